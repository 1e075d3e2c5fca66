package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/askme-reactions/api"
	"github.com/danielhkuo/askme-reactions/cliparse"
	"github.com/danielhkuo/askme-reactions/dom"
	"github.com/danielhkuo/askme-reactions/journal"
	"github.com/danielhkuo/askme-reactions/middleware"
	"github.com/danielhkuo/askme-reactions/models"
	"github.com/danielhkuo/askme-reactions/widget"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run owns the event loop; drive does the work on top of it
func run(ctx context.Context, cfg cliparse.Config, logger *slog.Logger, out io.Writer) error {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("cookie jar: %w", err)
	}
	if cfg.SessionID != "" {
		jar.SetCookies(base, []*http.Cookie{{
			Name:     models.CookieSession,
			Value:    cfg.SessionID,
			Path:     "/",
			HttpOnly: true,
		}})
	}

	httpClient := &http.Client{
		Jar:       jar,
		Timeout:   cfg.Timeout,
		Transport: middleware.NewLoggingTransport(nil, logger),
	}

	loop := dom.NewLoop(64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := loop.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer loop.Close()
		return drive(gctx, cfg, logger, out, httpClient, base, loop)
	})

	return g.Wait()
}

func drive(ctx context.Context, cfg cliparse.Config, logger *slog.Logger, out io.Writer, httpClient *http.Client, base *url.URL, loop *dom.Loop) error {
	pageURL, err := base.Parse(cfg.PagePath)
	if err != nil {
		return fmt.Errorf("invalid page path: %w", err)
	}

	doc, err := dom.Load(ctx, httpClient, pageURL.String(), loop, models.CookieSession)
	if err != nil {
		return err
	}
	slog.Info("Page loaded", "url", pageURL.String())

	client, err := api.NewClient(cfg.BaseURL, httpClient, doc, logger)
	if err != nil {
		return err
	}

	opts := widget.Options{
		Logger:      logger,
		Labels:      cfg.Labels,
		BaseContext: ctx,
	}
	if cfg.DatabaseURL != "" {
		j, err := journal.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer j.Close()
		opts.OnOutcome = j.Observer(ctx, logger)
		slog.Info("Journal ready", "type", cfg.DatabaseType)
	}

	ctrl, err := widget.Initialize(ctx, doc, client, opts)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	for _, action := range cfg.Actions {
		node, err := controlFor(ctrl, action)
		if err != nil {
			return err
		}
		if err := doc.Click(node); err != nil {
			return fmt.Errorf("click %s: %w", action, err)
		}
	}
	if err := ctrl.Wait(ctx); err != nil {
		return err
	}

	if err := report(ctx, out, doc, ctrl, cfg.Actions); err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := writePage(ctx, cfg.Output, doc); err != nil {
			return err
		}
		slog.Info("Page written", "path", cfg.Output)
	}
	return nil
}

// controlFor maps an action to the node a user would click
func controlFor(ctrl *widget.Controller, action models.Action) (*html.Node, error) {
	if action.Kind == models.KindCorrectness {
		item, ok := ctrl.Correctness(action.ItemID)
		if !ok {
			return nil, fmt.Errorf("no correctness widget for answer %s on this page", action.ItemID)
		}
		return item.Button, nil
	}

	item, ok := ctrl.Reaction(action.ItemType, action.ItemID)
	if !ok {
		return nil, fmt.Errorf("no %s widget for %s on this page", action.ItemType, action.ItemID)
	}
	if action.LikeType == models.Dislike {
		return item.Decrease, nil
	}
	return item.Increase, nil
}

// report prints the current state of each widget the actions touched,
// once per widget, in action order
func report(ctx context.Context, out io.Writer, doc *dom.Document, ctrl *widget.Controller, actions []models.Action) error {
	var lines []string
	err := doc.Loop().Do(ctx, func() {
		seen := make(map[string]bool)
		for _, action := range actions {
			key := action.Kind + ":" + string(action.ItemType) + ":" + action.ItemID
			if seen[key] {
				continue
			}
			seen[key] = true

			var line string
			if action.Kind == models.KindCorrectness {
				item, ok := ctrl.Correctness(action.ItemID)
				if !ok {
					continue
				}
				line = fmt.Sprintf("correct %s: %s", item.ItemID, dom.Text(item.Label))
			} else {
				item, ok := ctrl.Reaction(action.ItemType, action.ItemID)
				if !ok {
					continue
				}
				line = fmt.Sprintf("%s %s: %s", item.Type, item.ItemID, dom.Text(item.Counter))
			}
			lines = append(lines, line)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

func writePage(ctx context.Context, path string, doc *dom.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	var renderErr error
	if err := doc.Loop().Do(ctx, func() { renderErr = doc.Render(f) }); err != nil {
		return err
	}
	if renderErr != nil {
		return fmt.Errorf("failed to write page: %w", renderErr)
	}
	return f.Close()
}
