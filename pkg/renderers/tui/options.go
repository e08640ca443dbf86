package tui

import "go.uber.org/zap"

// DefaultMaxRounds bounds how many full passes Run makes over the form.
const DefaultMaxRounds = 3

// Theme captures optional prefixes the host applies to messages it prints.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures Run.
type Option func(*config)

type config struct {
	driver    PromptDriver
	logger    *zap.Logger
	maxRounds int
	theme     Theme
}

func newConfig(options []Option) config {
	cfg := config{
		logger:    zap.NewNop(),
		maxRounds: DefaultMaxRounds,
		theme:     Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver()
	}
	return cfg
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *config) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

// WithLogger attaches a logger for round and validity events.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxRounds limits the number of passes; values below one are ignored.
func WithMaxRounds(rounds int) Option {
	return func(cfg *config) {
		if rounds > 0 {
			cfg.maxRounds = rounds
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}
