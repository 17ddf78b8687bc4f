package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so pickers can be tested without a TTY.
type PromptDriver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns a PromptDriver backed by survey/v2 on the process
// stdio. Extra AskOpts (icons, stdio overrides) are passed to every prompt.
func NewSurveyDriver(opts ...survey.AskOpt) PromptDriver {
	return &surveyDriver{out: os.Stdout, opts: opts}
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(cfg.Options) == 0 {
		return 0, ErrNoChoices
	}
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex > 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.DefaultIndex
	}

	// An int target receives the selected index rather than the label.
	var idx int
	if err := survey.AskOne(prompt, &idx, d.opts...); err != nil {
		return 0, translateSurveyErr(err)
	}
	return checkChoice(idx, len(cfg.Options))
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func checkChoice(idx, n int) (int, error) {
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, idx, n)
	}
	return idx, nil
}
