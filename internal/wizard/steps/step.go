package steps

// Kind discriminates the step variants.
type Kind string

const (
	// KindQuestion is a step answered by choosing one option.
	KindQuestion Kind = "question"
	// KindInstruction shows static content and continues to a fixed step.
	KindInstruction Kind = "instruction"
	// KindCustom shows an input form and continues to a fixed step.
	KindCustom Kind = "custom"
	// KindResult is a terminal step.
	KindResult Kind = "result"
)

// ContentKind tells presentation layers how to render an Instruction.
type ContentKind string

const (
	// ContentText is static, read-only content.
	ContentText ContentKind = "text"
	// ContentForm is an interactive form built from the step's fields.
	ContentForm ContentKind = "form"
)

// Step is one node of a Graph. The interface is sealed: only the variants in
// this package implement it.
type Step interface {
	ID() string
	Kind() Kind
	Header() Header
	// Targets lists every transition target of the step.
	Targets() []string

	sealed()
}

// Header holds the display attributes shared by every step.
type Header struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Option is one selectable choice of a Question.
type Option struct {
	ID       string
	Label    string
	SubLabel string
	Value    any
	Next     string
}

// Question is answered by choosing exactly one of its options.
type Question struct {
	StepID      string
	Title       string
	Description string
	// Field is the data key the chosen option's value is stored under.
	// Defaults to StepID when empty.
	Field   string
	Options []Option
}

// FieldType describes the value kind a form field collects.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldBool   FieldType = "bool"
)

// Field is one input of an Instruction.
type Field struct {
	Key         string
	Label       string
	Description string
	Type        FieldType
	// Required fields must be present and non-empty before the step can be left.
	Required bool
	// Advanced fields are hidden behind an "advanced" toggle by prompters.
	Advanced bool
	// Validate holds validator tags checked against non-blank values, e.g.
	// "whole,min=1". Number fields are checked as float64, text fields as
	// strings.
	Validate string
	// Default computes the pre-filled value from the data collected so far.
	Default func(data map[string]any) any
}

// DefaultValue returns the field default for data, or nil when none is defined.
func (f Field) DefaultValue(data map[string]any) any {
	if f.Default == nil {
		return nil
	}
	return f.Default(data)
}

// Content references what an Instruction or Result displays.
type Content struct {
	Kind ContentKind
	// Ref names the renderer-specific content, e.g. "bitcoin-setup".
	Ref string
	// Body is optional literal text shown above any form.
	Body string
}

// Instruction shows content, optionally collects fields, and continues to a
// single static step. An empty Next makes the step terminal for navigation.
type Instruction struct {
	StepID      string
	Title       string
	Description string
	Content     Content
	Fields      []Field
	Next        string
}

// Result is a terminal step.
type Result struct {
	StepID      string
	Title       string
	Description string
	Content     Content
}

func (q *Question) ID() string { return q.StepID }

func (q *Question) Kind() Kind { return KindQuestion }

func (q *Question) Header() Header { return Header{Title: q.Title, Description: q.Description} }

func (q *Question) Targets() []string {
	targets := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		targets = append(targets, o.Next)
	}
	return targets
}

// FieldName returns the data key the answer is stored under.
func (q *Question) FieldName() string {
	if q.Field != "" {
		return q.Field
	}
	return q.StepID
}

// Option looks up an option by ID.
func (q *Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (q *Question) sealed() {}

func (s *Instruction) ID() string { return s.StepID }

func (s *Instruction) Kind() Kind {
	if s.Content.Kind == ContentForm {
		return KindCustom
	}
	return KindInstruction
}

func (s *Instruction) Header() Header { return Header{Title: s.Title, Description: s.Description} }

func (s *Instruction) Targets() []string {
	if s.Next == "" {
		return nil
	}
	return []string{s.Next}
}

// RequiredKeys returns the keys of all required fields.
func (s *Instruction) RequiredKeys() []string {
	var keys []string
	for _, f := range s.Fields {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (s *Instruction) sealed() {}

func (r *Result) ID() string { return r.StepID }

func (r *Result) Kind() Kind { return KindResult }

func (r *Result) Header() Header { return Header{Title: r.Title, Description: r.Description} }

func (r *Result) Targets() []string { return nil }

func (r *Result) sealed() {}
