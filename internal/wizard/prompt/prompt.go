package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Action is the user's answer to one step.
type Action struct {
	// Back moves to the previously visited step; other fields are ignored.
	Back bool
	// OptionID answers a question.
	OptionID string
	// Values answers an instruction or custom step.
	Values engine.Data
}

// Prompter asks the user about one step at a time.
type Prompter interface {
	// Ask presents s and returns the user's answer. data holds the answers
	// collected so far and feeds field defaults.
	Ask(ctx context.Context, s steps.Step, data engine.Data, canGoBack bool) (Action, error)
	// Reject tells the user why the last answer was not accepted.
	Reject(s steps.Step, err error)
}

// Run asks p about the current step of e until e reaches a result step.
// Answers rejected with a missing fields error are reported through
// p.Reject and the step is asked again.
func Run(ctx context.Context, e *engine.Engine, p Prompter, log logr.Logger) error {
	for !e.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := e.Current()
		action, err := p.Ask(ctx, step, e.Data(), e.CanGoBack())
		if err != nil {
			return fmt.Errorf("%s: %w", step.ID(), err)
		}

		if action.Back {
			if e.GoBack() {
				log.V(1).Info("went back", "step", e.CurrentID())
			}
			continue
		}

		switch step.Kind() {
		case steps.KindQuestion:
			err = e.SelectOption(step.ID(), action.OptionID)
		default:
			err = e.SubmitStepData(step.ID(), action.Values)
			if err == nil && e.CurrentID() == step.ID() {
				return fmt.Errorf("%s: step has no next step and is not a result", step.ID())
			}
		}

		if errors.Is(err, engine.ErrMissingFields) || errors.Is(err, engine.ErrInvalidFields) || errors.Is(err, engine.ErrUnknownOption) {
			p.Reject(step, err)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
