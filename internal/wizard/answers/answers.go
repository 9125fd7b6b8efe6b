// Package answers replays a wizard session from a YAML answers file.
//
// An answers file names the wizard and lists the actions a user would take:
//
//	wizard: full-stack
//	actions:
//	  - select: opt_mainnet
//	  - submit:
//	      bitcoinSocketPath: /home/bitcoin/.bitcoin/node.sock
//	  - back: true
//
// Actions may pin the step they expect to answer with "step"; replay fails
// when the session is elsewhere.
package answers

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
)

var (
	// ErrInvalidFile is returned for answers files that cannot be replayed.
	ErrInvalidFile = errors.New("invalid answers file")
	// ErrUnexpectedStep is returned when an action pins a step the session is not on.
	ErrUnexpectedStep = errors.New("unexpected step")
	// ErrIncomplete is returned when the actions end before a result step.
	ErrIncomplete = errors.New("answers end before a result step")
)

// File is a parsed answers file.
type File struct {
	Wizard  string   `yaml:"wizard"`
	Actions []Action `yaml:"actions"`
}

// Action is one user action. Exactly one of Select, Submit, Back and
// Restart is set.
type Action struct {
	Step    string `yaml:"step,omitempty"`
	Select  string `yaml:"select,omitempty"`
	Submit  Values `yaml:"submit,omitempty"`
	Back    bool   `yaml:"back,omitempty"`
	Restart bool   `yaml:"restart,omitempty"`
}

// Values are the field values of a submit action.
type Values map[string]any

// IsZero keeps an empty but present submit in marshaled files.
func (v Values) IsZero() bool { return v == nil }

func (a Action) kinds() int {
	n := 0
	if a.Select != "" {
		n++
	}
	if a.Submit != nil {
		n++
	}
	if a.Back {
		n++
	}
	if a.Restart {
		n++
	}
	return n
}

// Load reads and validates an answers file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates answers file content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidFile, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that the wizard is named and every action does one thing.
func (f *File) Validate() error {
	if f.Wizard == "" {
		return fmt.Errorf("%w: wizard is required", ErrInvalidFile)
	}
	for i, a := range f.Actions {
		if a.kinds() != 1 {
			return fmt.Errorf("%w: action %d must set exactly one of select, submit, back, restart", ErrInvalidFile, i+1)
		}
	}
	return nil
}

// Marshal renders f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Replay applies the actions of f to e in order and fails unless e ends on
// a result step. The first rejected action stops the replay.
func Replay(e *engine.Engine, f *File) error {
	for i, a := range f.Actions {
		if err := apply(e, a); err != nil {
			return fmt.Errorf("action %d: %w", i+1, err)
		}
	}
	if !e.IsTerminal() {
		return fmt.Errorf("%w: stopped at %q", ErrIncomplete, e.CurrentID())
	}
	return nil
}

func apply(e *engine.Engine, a Action) error {
	current := e.CurrentID()
	if a.Step != "" && a.Step != current {
		return fmt.Errorf("%w: expected %q, session is at %q", ErrUnexpectedStep, a.Step, current)
	}

	switch {
	case a.Select != "":
		return e.SelectOption(current, a.Select)
	case a.Submit != nil:
		return e.SubmitStepData(current, engine.Data(a.Submit))
	case a.Back:
		e.GoBack()
	case a.Restart:
		e.Restart()
	}
	return nil
}
