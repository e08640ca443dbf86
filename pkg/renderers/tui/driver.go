package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single-line prompt. Placeholder is shown as an
// example inside the help text.
type InputConfig struct {
	Message     string
	Default     string
	Help        string
	Placeholder string
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-choice prompt. DefaultIndex outside
// Options means no preselection.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// TextAreaConfig configures a multi-line prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver is the terminal seen by Run. Tests script it; the default
// asks through survey.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// NewSurveyDriver returns the survey-backed PromptDriver. Prompts use the
// process terminal; Info lines go to stdout.
func NewSurveyDriver() PromptDriver {
	return surveyDriver{out: os.Stdout}
}

type surveyDriver struct {
	out io.Writer
}

// askSurvey runs one survey prompt, honouring ctx before it blocks on the
// terminal. Ctrl+C surfaces as ErrAborted.
func askSurvey[T any](ctx context.Context, prompt survey.Prompt) (T, error) {
	var answer T
	if err := ctx.Err(); err != nil {
		return answer, err
	}
	err := survey.AskOne(prompt, &answer)
	if errors.Is(err, terminal.InterruptErr) {
		return answer, ErrAborted
	}
	return answer, err
}

func (surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return askSurvey[string](ctx, &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    withExample(cfg.Help, cfg.Placeholder),
	})
}

func (surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return askSurvey[string](ctx, &survey.Password{Message: cfg.Message, Help: cfg.Help})
}

func (surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return askSurvey[bool](ctx, &survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
}

func (surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	choice, err := askSurvey[string](ctx, prompt)
	if err != nil {
		return 0, err
	}
	return slices.Index(cfg.Options, choice), nil
}

func (surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return askSurvey[string](ctx, &survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
}

func (d surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func withExample(help, example string) string {
	switch {
	case example == "":
		return help
	case help == "":
		return "e.g. " + example
	}
	return help + " (e.g. " + example + ")"
}
