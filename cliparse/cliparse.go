package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/askme-reactions/models"
)

const (
	defaultEnvFile = ".env"
	defaultTimeout = 10 * time.Second
)

type Config struct {
	BaseURL      string
	PagePath     string
	SessionID    string
	Timeout      time.Duration
	DatabaseType string
	DatabaseURL  string
	Output       string
	Verbose      bool
	Labels       models.Labels
	Actions      []models.Action
}

// ParseFlags validates flags, loads .env and falls back to the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, timeout string

	fs := flag.NewFlagSet("askme-reactions", flag.ContinueOnError)

	// Server and page
	fs.StringVar(&cfg.BaseURL, "u", "", "Server base URL, e.g. http://localhost:8000")
	fs.StringVar(&cfg.PagePath, "page", "", "Page path to load (default /)")
	fs.StringVar(&cfg.SessionID, "session", "", "Session cookie value (prefer env)")
	fs.StringVar(&timeout, "timeout", "", "HTTP timeout (default 10s)")

	// Journal
	fs.StringVar(&cfg.DatabaseType, "t", "", "Journal database type (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Journal database URL (disabled when empty)")

	// Output
	fs.StringVar(&cfg.Output, "o", "", "Write the patched page to this file")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")
	fs.StringVar(&cfg.Labels.Correct, "label-correct", "", "Label text for a correct answer")
	fs.StringVar(&cfg.Labels.NotCorrect, "label-not-correct", "", "Label text for an answer not marked correct")
	fs.StringVar(&envFile, "env", defaultEnvFile, "Environment file to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	explicitEnv := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "env" {
			explicitEnv = true
		}
	})
	// Existing environment variables win over the file
	if err := godotenv.Load(envFile); err != nil {
		if explicitEnv || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("ASKME_BASE_URL")
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("base URL required (use -u or ASKME_BASE_URL env)")
	}

	if cfg.PagePath == "" {
		cfg.PagePath = os.Getenv("ASKME_PAGE")
		if cfg.PagePath == "" {
			cfg.PagePath = "/"
		}
	}
	if cfg.SessionID == "" {
		cfg.SessionID = os.Getenv("ASKME_SESSION")
	}

	if timeout == "" {
		timeout = os.Getenv("ASKME_TIMEOUT")
	}
	cfg.Timeout = defaultTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid timeout %q", timeout)
		}
		cfg.Timeout = d
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	defaults := models.DefaultLabels()
	if cfg.Labels.Correct == "" {
		cfg.Labels.Correct = defaults.Correct
	}
	if cfg.Labels.NotCorrect == "" {
		cfg.Labels.NotCorrect = defaults.NotCorrect
	}

	for _, arg := range fs.Args() {
		action, err := models.ParseAction(arg)
		if err != nil {
			return Config{}, err
		}
		cfg.Actions = append(cfg.Actions, action)
	}

	return cfg, nil
}
