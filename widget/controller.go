// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/danielhkuo/askme-reactions/auth"
	"github.com/danielhkuo/askme-reactions/dom"
	"github.com/danielhkuo/askme-reactions/models"
)

// ErrNoTarget is returned when the server answered but the page has no
// counter or label for the item.
var ErrNoTarget = errors.New("no element to update")

// API is the server side of the widgets. *api.Client implements it.
type API interface {
	Like(ctx context.Context, itemType models.ItemType, itemID string, likeType models.LikeType) (int, error)
	MakeCorrect(ctx context.Context, answerID string) (bool, error)
}

// Options configures a Controller. The zero value is usable.
type Options struct {
	Logger *slog.Logger

	// Labels are the correctness label texts. Empty fields take the
	// value from models.DefaultLabels.
	Labels models.Labels

	// OnOutcome is called once per finished submission, from the
	// submitting goroutine. It must be safe for concurrent use.
	OnOutcome func(models.Outcome)

	// BaseContext is used for click-triggered submissions.
	// Defaults to context.Background().
	BaseContext context.Context
}

// Controller binds the reaction and correctness widgets of one document.
type Controller struct {
	doc       *dom.Document
	api       API
	logger    *slog.Logger
	labels    models.Labels
	onOutcome func(models.Outcome)
	baseCtx   context.Context

	reactions []ReactionItem
	corrects  []CorrectnessItem

	mu        sync.Mutex
	listeners []*dom.Listener
	pending   int
	idle      chan struct{} // closed when pending drops to zero
}

// Initialize scans doc for reaction and correctness groups and binds their
// click listeners. The scan runs on the document's loop, which must be
// running. Malformed groups are logged and skipped.
func Initialize(ctx context.Context, doc *dom.Document, api API, opts Options) (*Controller, error) {
	if doc == nil || api == nil {
		return nil, errors.New("widget: document and api are required")
	}

	c := &Controller{
		doc:       doc,
		api:       api,
		logger:    opts.Logger,
		labels:    opts.Labels,
		onOutcome: opts.OnOutcome,
		baseCtx:   opts.BaseContext,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	defaults := models.DefaultLabels()
	if c.labels.Correct == "" {
		c.labels.Correct = defaults.Correct
	}
	if c.labels.NotCorrect == "" {
		c.labels.NotCorrect = defaults.NotCorrect
	}
	if c.baseCtx == nil {
		c.baseCtx = context.Background()
	}

	var problems []error
	err := doc.Loop().Do(ctx, func() {
		for _, itemType := range []models.ItemType{models.ItemQuestion, models.ItemAnswer} {
			items, errs := FindReactionItems(doc, itemType)
			c.reactions = append(c.reactions, items...)
			problems = append(problems, errs...)
		}
		items, errs := FindCorrectnessItems(doc)
		c.corrects = items
		problems = append(problems, errs...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	for _, p := range problems {
		c.logger.Warn("skipping widget", "error", p)
	}

	for _, item := range c.reactions {
		c.listen(item.Increase, func(ctx context.Context) {
			c.SubmitReaction(ctx, item.ItemID, item.Type, models.Like)
		})
		c.listen(item.Decrease, func(ctx context.Context) {
			c.SubmitReaction(ctx, item.ItemID, item.Type, models.Dislike)
		})
	}
	for _, item := range c.corrects {
		c.listen(item.Button, func(ctx context.Context) {
			c.SubmitCorrectness(ctx, item.ItemID)
		})
	}

	c.logger.Debug("widgets bound",
		"reactions", len(c.reactions),
		"correctness", len(c.corrects),
		"listeners", len(c.listeners),
	)
	return c, nil
}

// listen runs submit on its own goroutine for every click on node so the
// loop never waits on the network.
func (c *Controller) listen(node *html.Node, submit func(ctx context.Context)) {
	l := c.doc.AddEventListener(node, "click", func(dom.Event) {
		c.begin()
		go func() {
			defer c.end()
			submit(c.baseCtx)
		}()
	})

	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Reactions returns the bound reaction view models.
func (c *Controller) Reactions() []ReactionItem {
	return append([]ReactionItem(nil), c.reactions...)
}

// CorrectnessItems returns the bound correctness view models.
func (c *Controller) CorrectnessItems() []CorrectnessItem {
	return append([]CorrectnessItem(nil), c.corrects...)
}

// Reaction returns the view model for an item, if bound.
func (c *Controller) Reaction(itemType models.ItemType, itemID string) (ReactionItem, bool) {
	for _, item := range c.reactions {
		if item.Type == itemType && item.ItemID == itemID {
			return item, true
		}
	}
	return ReactionItem{}, false
}

// Correctness returns the view model for an answer, if bound.
func (c *Controller) Correctness(itemID string) (CorrectnessItem, bool) {
	for _, item := range c.corrects {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return CorrectnessItem{}, false
}

// SubmitReaction posts a vote and writes the returned count into the
// item's counter. Concurrent submissions are neither merged nor ordered:
// whichever response resolves last is what the counter shows. Must not be
// called from a loop task.
func (c *Controller) SubmitReaction(ctx context.Context, itemID string, itemType models.ItemType, likeType models.LikeType) (int, error) {
	outcome := models.Outcome{
		RequestID: auth.NewRequestID(),
		Kind:      models.KindReaction,
		ItemType:  itemType,
		ItemID:    itemID,
		LikeType:  likeType,
		At:        time.Now(),
	}

	count, err := c.api.Like(ctx, itemType, itemID, likeType)
	if err == nil {
		outcome.Result = strconv.Itoa(count)
		err = c.patch(ctx, func() *html.Node { return c.counterFor(itemType, itemID) }, outcome.Result)
	}

	c.finish(&outcome, err)
	return count, err
}

// SubmitCorrectness toggles an answer's correct state and updates its
// label. Must not be called from a loop task.
func (c *Controller) SubmitCorrectness(ctx context.Context, itemID string) (bool, error) {
	outcome := models.Outcome{
		RequestID: auth.NewRequestID(),
		Kind:      models.KindCorrectness,
		ItemType:  models.ItemAnswer,
		ItemID:    itemID,
		At:        time.Now(),
	}

	correct, err := c.api.MakeCorrect(ctx, itemID)
	if err == nil {
		outcome.Result = c.labels.NotCorrect
		if correct {
			outcome.Result = c.labels.Correct
		}
		err = c.patch(ctx, func() *html.Node { return c.labelFor(itemID) }, outcome.Result)
	}

	c.finish(&outcome, err)
	return correct, err
}

// patch sets the text of the node returned by find, on the loop.
func (c *Controller) patch(ctx context.Context, find func() *html.Node, text string) error {
	var target *html.Node
	err := c.doc.Loop().Do(ctx, func() {
		target = find()
		if target != nil {
			dom.SetText(target, text)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if target == nil {
		return ErrNoTarget
	}
	return nil
}

func (c *Controller) finish(outcome *models.Outcome, err error) {
	outcome.Duration = time.Since(outcome.At)

	if err != nil {
		outcome.Result = ""
		outcome.Error = err.Error()
		c.logger.Error("widget request failed",
			"request_id", outcome.RequestID,
			"kind", outcome.Kind,
			"item_type", outcome.ItemType,
			"item_id", outcome.ItemID,
			"like_type", outcome.LikeType,
			"error", err,
		)
	} else {
		c.logger.Debug("widget updated",
			"request_id", outcome.RequestID,
			"kind", outcome.Kind,
			"item_id", outcome.ItemID,
			"result", outcome.Result,
			"duration_ms", outcome.Duration.Milliseconds(),
		)
	}

	if c.onOutcome != nil {
		c.onOutcome(*outcome)
	}
}

// counterFor prefers the bound view model and falls back to the first
// element with a matching data-id. Runs on the loop.
func (c *Controller) counterFor(itemType models.ItemType, itemID string) *html.Node {
	if item, ok := c.Reaction(itemType, itemID); ok {
		return item.Counter
	}
	return c.doc.QueryDataID(itemID)
}

// labelFor runs on the loop.
func (c *Controller) labelFor(itemID string) *html.Node {
	if item, ok := c.Correctness(itemID); ok {
		return item.Label
	}
	for _, group := range c.doc.ElementsByClass(models.ClassCorrect) {
		if id, _ := dom.Dataset(group, models.AttrDataID); id == itemID {
			return dom.FindByClass(group, models.ClassLabel)
		}
	}
	return nil
}

func (c *Controller) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	if c.pending == 0 {
		close(c.idle)
	}
}

// Wait blocks until every click-triggered submission has finished. Clicks
// queued on the loop before Wait is called are counted. Clicks dispatched
// while Wait runs are counted if their handler starts before the last
// pending submission ends.
func (c *Controller) Wait(ctx context.Context) error {
	if err := c.doc.Loop().Do(ctx, func() {}); err != nil && !errors.Is(err, dom.ErrLoopClosed) {
		return err
	}

	c.mu.Lock()
	if c.pending == 0 {
		c.mu.Unlock()
		return nil
	}
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close removes every listener the controller added. Clicks already
// dispatched still run, and in-flight submissions are not cancelled.
func (c *Controller) Close() {
	c.mu.Lock()
	listeners := c.listeners
	c.listeners = nil
	c.mu.Unlock()

	for _, l := range listeners {
		l.Remove()
	}
}
