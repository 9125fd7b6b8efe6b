package prompt

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cast"

	"github.com/stratum-mining/sv2-wizard/internal/util/placeholder"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// backChoice is the select value of the "Back" entry.
const backChoice = "__back"

// runForm runs a huh form. Tests replace it to skip the terminal, which
// leaves every bound value at its pre-filled default.
var runForm = func(ctx context.Context, f *huh.Form) error {
	return f.RunWithContext(ctx)
}

// Terminal asks questions with huh forms.
type Terminal struct {
	out io.Writer
	// advanced shows advanced fields without asking first.
	advanced bool
}

// NewTerminal returns a prompter printing step headers to out.
func NewTerminal(out io.Writer, advanced bool) *Terminal {
	return &Terminal{out: out, advanced: advanced}
}

// Ask implements Prompter.
func (t *Terminal) Ask(ctx context.Context, s steps.Step, data engine.Data, canGoBack bool) (Action, error) {
	switch step := s.(type) {
	case *steps.Question:
		return t.choose(ctx, step, data, canGoBack)
	case *steps.Instruction:
		return t.fill(ctx, step, data, canGoBack)
	default:
		return Action{}, fmt.Errorf("cannot prompt for %s step %q", s.Kind(), s.ID())
	}
}

// Reject implements Prompter.
func (t *Terminal) Reject(_ steps.Step, err error) {
	fmt.Fprintln(t.out, errorStyle.Render(crossMark+" "+err.Error()))
}

func (t *Terminal) choose(ctx context.Context, q *steps.Question, data engine.Data, canGoBack bool) (Action, error) {
	choice := preselect(q, data)
	err := runForm(ctx, huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(q.Title).
				Description(q.Description).
				Options(questionOptions(q, canGoBack)...).
				Value(&choice),
		),
	))
	if err != nil {
		return Action{}, err
	}

	if choice == backChoice {
		return Action{Back: true}, nil
	}
	return Action{OptionID: choice}, nil
}

// questionOptions converts the options of q to huh options keyed by option ID.
func questionOptions(q *steps.Question, canGoBack bool) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(q.Options)+1)
	for _, o := range q.Options {
		label := o.Label
		if o.SubLabel != "" {
			label += " - " + o.SubLabel
		}
		opts = append(opts, huh.NewOption(label, o.ID))
	}
	if canGoBack {
		opts = append(opts, huh.NewOption("Back", backChoice))
	}
	return opts
}

// preselect returns the option matching the previous answer, or the first
// option.
func preselect(q *steps.Question, data engine.Data) string {
	if prev, ok := data[q.FieldName()]; ok {
		for _, o := range q.Options {
			if o.Value == prev {
				return o.ID
			}
		}
	}
	return q.Options[0].ID
}

func (t *Terminal) fill(ctx context.Context, in *steps.Instruction, data engine.Data, canGoBack bool) (Action, error) {
	fmt.Fprintln(t.out, titleStyle.Render(in.Title))
	if in.Description != "" {
		fmt.Fprintln(t.out, subtitleStyle.Render(in.Description))
	}
	if in.Content.Body != "" {
		fmt.Fprintln(t.out)
		fmt.Fprintln(t.out, in.Content.Body)
	}
	fmt.Fprintln(t.out)

	showAdvanced := t.advanced
	if !showAdvanced && hasAdvanced(in) {
		err := runForm(ctx, huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Show advanced settings?").
					Description("Advanced settings keep their defaults when hidden").
					Value(&showAdvanced),
			),
		))
		if err != nil {
			return Action{}, err
		}
	}

	form := newFieldForm(in, data, showAdvanced)

	proceed := true
	inputs := form.fields
	if canGoBack {
		inputs = append(inputs, huh.NewConfirm().
			Title("Continue?").
			Affirmative("Continue").
			Negative("Back").
			Value(&proceed))
	}
	if len(inputs) == 0 {
		inputs = append(inputs, huh.NewNote().Title(in.Title).Next(true))
	}

	if err := runForm(ctx, huh.NewForm(huh.NewGroup(inputs...).Title(in.Title))); err != nil {
		return Action{}, err
	}
	if !proceed {
		return Action{Back: true}, nil
	}

	values, err := form.values()
	if err != nil {
		return Action{}, err
	}
	return Action{Values: values}, nil
}

func hasAdvanced(in *steps.Instruction) bool {
	for _, f := range in.Fields {
		if f.Advanced {
			return true
		}
	}
	return false
}

// fieldForm binds huh fields of one instruction to local values.
type fieldForm struct {
	fields []huh.Field
	text   map[string]*string
	flags  map[string]*bool
	field  map[string]steps.Field
	// hidden holds the defaults of advanced fields that were not shown.
	hidden engine.Data
}

func newFieldForm(in *steps.Instruction, data engine.Data, showAdvanced bool) *fieldForm {
	ff := &fieldForm{
		text:   map[string]*string{},
		flags:  map[string]*bool{},
		field:  map[string]steps.Field{},
		hidden: engine.Data{},
	}

	for _, f := range in.Fields {
		def := f.DefaultValue(data)
		if f.Advanced && !showAdvanced {
			if def != nil {
				ff.hidden[f.Key] = def
			}
			continue
		}

		ff.field[f.Key] = f
		title := f.Label
		if f.Required {
			title += " *"
		}

		if f.Type == steps.FieldBool {
			v := cast.ToBool(def)
			ff.flags[f.Key] = &v
			ff.fields = append(ff.fields, huh.NewConfirm().
				Title(title).
				Description(f.Description).
				Value(&v))
			continue
		}

		v := placeholder.Format(def)
		ff.text[f.Key] = &v
		ff.fields = append(ff.fields, huh.NewInput().
			Title(title).
			Description(f.Description).
			Value(&v).
			Validate(validateField(f)))
	}
	return ff
}

// values converts the bound inputs to session data.
func (ff *fieldForm) values() (engine.Data, error) {
	out := ff.hidden.Clone()
	for key, v := range ff.flags {
		out[key] = *v
	}
	for key, v := range ff.text {
		val, err := convert(ff.field[key], *v)
		if err != nil {
			return nil, err
		}
		if val != nil {
			out[key] = val
		}
	}
	return out, nil
}

func validateField(f steps.Field) func(string) error {
	return func(s string) error {
		if f.Required && strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", f.Label)
		}
		v, err := convert(f, s)
		if err != nil {
			return err
		}
		return engine.CheckField(f, v)
	}
}

// convert parses raw according to the field type. Empty numbers convert to
// nil so builders fall back to their defaults.
func convert(f steps.Field, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if f.Type != steps.FieldNumber {
		return raw, nil
	}
	if raw == "" {
		return nil, nil
	}

	if strings.ContainsAny(raw, ".eE") {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Label)
		}
		return v, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", f.Label)
	}
	return v, nil
}
