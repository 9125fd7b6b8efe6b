package handlers

import (
	"context"
	"fmt"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/answers"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
)

// RenderOptions are the flags of the render command.
type RenderOptions struct {
	Answers string
	Output  OutputOptions
}

// loadAnswers reads an answers file. Replaced in tests.
var loadAnswers = answers.Load

// Render replays an answers file and writes the generated configuration.
func Render(ctx context.Context, opts RenderOptions) error {
	f, err := loadAnswers(opts.Answers)
	if err != nil {
		return err
	}

	def, err := flows.Get(f.Wizard)
	if err != nil {
		return err
	}

	e := engine.New(def.Graph, engine.WithLogger(logger))
	if err := answers.Replay(e, f); err != nil {
		return fmt.Errorf("failed to replay %s: %w", opts.Answers, err)
	}
	logger.V(1).Info("replayed answers", "wizard", def.Name, "result", e.CurrentID())

	_, err = generate(ctx, def, e.Data(), opts.Output)
	return err
}
