package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/answers"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/prompt"
)

// ErrNotInteractive is returned by Init when stdin is not a terminal.
var ErrNotInteractive = errors.New("init needs an interactive terminal, use render with an answers file instead")

// InitOptions are the flags of the init command.
type InitOptions struct {
	Wizard      string
	Output      OutputOptions
	Advanced    bool
	SaveAnswers string
}

// Factory function variables for init - can be replaced in tests.
var (
	// isTerminal reports whether stdin is interactive.
	isTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	// newPrompter creates the interactive prompter.
	newPrompter = func(out io.Writer, advanced bool) prompt.Prompter {
		return prompt.NewTerminal(out, advanced)
	}

	// runPrompt drives the engine until it reaches a result.
	runPrompt = prompt.Run

	// writeAnswers writes a recorded answers file.
	writeAnswers = func(path string, f *answers.File) error {
		data, err := f.Marshal()
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0600)
	}
)

// Init runs a wizard interactively and writes the generated configuration.
func Init(ctx context.Context, opts InitOptions) error {
	if !isTerminal() {
		return ErrNotInteractive
	}

	def, err := flows.Get(opts.Wizard)
	if err != nil {
		return err
	}

	prompt.PrintHeader(os.Stdout, def.Title, def.Subtitle)

	var p prompt.Prompter = newPrompter(os.Stdout, opts.Advanced)
	var rec *answers.Recorder
	if opts.SaveAnswers != "" {
		rec = answers.NewRecorder(def.Name, p)
		p = rec
	}

	e := engine.New(def.Graph, engine.WithLogger(logger))
	if err := runPrompt(ctx, e, p, logger); err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if rec != nil {
		if err := writeAnswers(opts.SaveAnswers, rec.File()); err != nil {
			return fmt.Errorf("failed to save answers: %w", err)
		}
		fmt.Printf("Answers saved to %s\n", opts.SaveAnswers)
	}

	_, err = generate(ctx, def, e.Data(), opts.Output)
	return err
}
