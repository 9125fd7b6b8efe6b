package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Sentinel errors matched with errors.Is.
var (
	ErrNotCurrentStep = errors.New("step is not the current step")
	ErrUnknownOption  = errors.New("unknown option")
	ErrWrongStepType  = errors.New("wrong step type for operation")
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidFields  = errors.New("invalid field values")
)

// NotCurrentStepError is returned when an action targets a step other than
// the current one.
type NotCurrentStepError struct {
	StepID  string
	Current string
}

func (e *NotCurrentStepError) Error() string {
	return fmt.Sprintf("step %q is not the current step (current: %q)", e.StepID, e.Current)
}

func (e *NotCurrentStepError) Unwrap() error { return ErrNotCurrentStep }

// UnknownOptionError is returned when a question has no option with the given ID.
type UnknownOptionError struct {
	StepID   string
	OptionID string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("question %q has no option %q", e.StepID, e.OptionID)
}

func (e *UnknownOptionError) Unwrap() error { return ErrUnknownOption }

// WrongStepTypeError is returned when an action does not apply to the step kind.
type WrongStepTypeError struct {
	StepID   string
	Kind     steps.Kind
	Expected []steps.Kind
}

func (e *WrongStepTypeError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		expected[i] = string(k)
	}
	return fmt.Sprintf("step %q is a %s step, expected %s", e.StepID, e.Kind, strings.Join(expected, " or "))
}

func (e *WrongStepTypeError) Unwrap() error { return ErrWrongStepType }

// MissingFieldsError lists the required fields absent after a submit.
type MissingFieldsError struct {
	StepID string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("step %q is missing required fields: %s", e.StepID, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingFields }

// FieldError is a value rejected by a field's validation tags.
type FieldError struct {
	Key    string
	Label  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Label != "" {
		return e.Label + " " + e.Reason
	}
	return e.Key + " " + e.Reason
}

// InvalidFieldsError lists the fields of a submit whose values were rejected.
type InvalidFieldsError struct {
	StepID string
	Fields []FieldError
}

func (e *InvalidFieldsError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s (%s)", f.Key, f.Reason)
	}
	return fmt.Sprintf("step %q has invalid fields: %s", e.StepID, strings.Join(parts, ", "))
}

// Keys returns the keys of the rejected fields.
func (e *InvalidFieldsError) Keys() []string {
	keys := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (e *InvalidFieldsError) Unwrap() error { return ErrInvalidFields }
