package engine

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Data holds the answers collected during a session, keyed by field name.
type Data map[string]any

// Clone returns a shallow copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String returns the value at key if it is a string.
func (d Data) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// State is a point-in-time copy of a session.
type State struct {
	CurrentStepID string   `json:"currentStepId" yaml:"current_step_id"`
	History       []string `json:"history" yaml:"history"`
	Data          Data     `json:"data" yaml:"data"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition events.
func WithLogger(l logr.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithData seeds the session with initial data. Restart clears it.
func WithData(d Data) Option {
	return func(e *Engine) {
		for k, v := range d {
			e.data[k] = v
		}
	}
}

// Engine is one wizard session over a shared, immutable graph.
type Engine struct {
	graph   *steps.Graph
	current string
	history []string
	data    Data
	log     logr.Logger
}

// New starts a session at the graph's initial step.
func New(g *steps.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:   g,
		current: g.Initial(),
		data:    Data{},
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the session runs over.
func (e *Engine) Graph() *steps.Graph { return e.graph }

// Current returns the current step.
func (e *Engine) Current() steps.Step { return e.graph.MustLookup(e.current) }

// CurrentID returns the ID of the current step.
func (e *Engine) CurrentID() string { return e.current }

// History returns a copy of the visited step IDs, oldest first.
func (e *Engine) History() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// Data returns a copy of the collected data.
func (e *Engine) Data() Data { return e.data.Clone() }

// Value returns a single collected value.
func (e *Engine) Value(key string) (any, bool) {
	v, ok := e.data[key]
	return v, ok
}

// State returns a snapshot of the session.
func (e *Engine) State() State {
	return State{
		CurrentStepID: e.current,
		History:       e.History(),
		Data:          e.Data(),
	}
}

// IsTerminal reports whether the current step is a result.
func (e *Engine) IsTerminal() bool { return e.Current().Kind() == steps.KindResult }

// CanGoBack reports whether GoBack would move.
func (e *Engine) CanGoBack() bool { return len(e.history) > 0 }

// SelectOption answers the current question with the given option and moves
// to the option's next step.
func (e *Engine) SelectOption(stepID, optionID string) error {
	if stepID != e.current {
		return &NotCurrentStepError{StepID: stepID, Current: e.current}
	}
	s := e.Current()
	if s.Kind() != steps.KindQuestion {
		return &WrongStepTypeError{StepID: stepID, Kind: s.Kind(), Expected: []steps.Kind{steps.KindQuestion}}
	}
	q := s.(*steps.Question)
	opt, ok := q.Option(optionID)
	if !ok {
		return &UnknownOptionError{StepID: stepID, OptionID: optionID}
	}

	e.data[q.FieldName()] = opt.Value
	e.advance(opt.Next)
	return nil
}

// SubmitStepData merges partial into the session data and leaves the current
// instruction or custom step. Required fields of the step must be present in
// the merged data and every field value must pass its validation tags. A
// step without a next step records the data and stays.
func (e *Engine) SubmitStepData(stepID string, partial Data) error {
	if stepID != e.current {
		return &NotCurrentStepError{StepID: stepID, Current: e.current}
	}
	s := e.Current()
	kind := s.Kind()
	if kind != steps.KindInstruction && kind != steps.KindCustom {
		return &WrongStepTypeError{StepID: stepID, Kind: kind, Expected: []steps.Kind{steps.KindInstruction, steps.KindCustom}}
	}
	in := s.(*steps.Instruction)

	merged := e.data.Clone()
	for k, v := range partial {
		merged[k] = v
	}

	var missing []string
	for _, key := range in.RequiredKeys() {
		if !present(merged, key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		e.log.V(1).Info("rejected submit", "step", stepID, "missing", missing)
		return &MissingFieldsError{StepID: stepID, Fields: missing}
	}

	var invalid []FieldError
	for _, f := range in.Fields {
		v, ok := merged[f.Key]
		if !ok {
			continue
		}
		var fe *FieldError
		if errors.As(CheckField(f, v), &fe) {
			invalid = append(invalid, *fe)
		}
	}
	if len(invalid) > 0 {
		e.log.V(1).Info("rejected submit", "step", stepID, "invalid", len(invalid))
		return &InvalidFieldsError{StepID: stepID, Fields: invalid}
	}

	e.data = merged
	if in.Next == "" {
		e.log.V(1).Info("recorded data on terminal step", "step", stepID)
		return nil
	}
	e.advance(in.Next)
	return nil
}

// GoBack returns to the previously visited step. Collected data is kept.
// It reports whether the session moved.
func (e *Engine) GoBack() bool {
	if len(e.history) == 0 {
		return false
	}
	last := len(e.history) - 1
	from := e.current
	e.current = e.history[last]
	e.history = e.history[:last]
	e.log.V(1).Info("went back", "from", from, "to", e.current)
	return true
}

// Restart returns to the initial step and clears history and data.
func (e *Engine) Restart() {
	e.current = e.graph.Initial()
	e.history = nil
	e.data = Data{}
	e.log.V(1).Info("restarted", "step", e.current)
}

func (e *Engine) advance(next string) {
	e.log.V(1).Info("advanced", "from", e.current, "to", next)
	e.history = append(e.history, e.current)
	e.current = next
}

// present reports whether key holds a usable value. Strings must contain
// something other than whitespace.
func present(d Data, key string) bool {
	v, ok := d[key]
	return ok && !blank(v)
}
