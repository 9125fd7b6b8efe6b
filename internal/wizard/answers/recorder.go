package answers

import (
	"context"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/prompt"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Recorder wraps a prompter and records every accepted answer, so an
// interactive session can be saved and replayed later.
type Recorder struct {
	prompter prompt.Prompter
	file     File
}

// NewRecorder records the answers given to p for the named wizard.
func NewRecorder(wizard string, p prompt.Prompter) *Recorder {
	return &Recorder{prompter: p, file: File{Wizard: wizard}}
}

// Ask implements prompt.Prompter.
func (r *Recorder) Ask(ctx context.Context, s steps.Step, data engine.Data, canGoBack bool) (prompt.Action, error) {
	action, err := r.prompter.Ask(ctx, s, data, canGoBack)
	if err != nil {
		return action, err
	}

	rec := Action{Step: s.ID()}
	switch {
	case action.Back:
		if !canGoBack {
			return action, nil
		}
		rec.Back = true
	case s.Kind() == steps.KindQuestion:
		rec.Select = action.OptionID
	default:
		rec.Submit = Values(action.Values.Clone())
	}
	r.file.Actions = append(r.file.Actions, rec)
	return action, nil
}

// Reject implements prompt.Prompter. The rejected answer is dropped from
// the recording.
func (r *Recorder) Reject(s steps.Step, err error) {
	if n := len(r.file.Actions); n > 0 {
		r.file.Actions = r.file.Actions[:n-1]
	}
	r.prompter.Reject(s, err)
}

// File returns the recorded answers.
func (r *Recorder) File() *File {
	f := r.file
	f.Actions = append([]Action(nil), r.file.Actions...)
	return &f
}
