package steps

// View is a serializable description of a step, used by the graph command
// and the HTTP API.
type View struct {
	ID          string       `json:"id" yaml:"id"`
	Type        Kind         `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Content     string       `json:"content,omitempty" yaml:"content,omitempty"`
	Field       string       `json:"field,omitempty" yaml:"field,omitempty"`
	Options     []OptionView `json:"options,omitempty" yaml:"options,omitempty"`
	Fields      []FieldView  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Next        string       `json:"next,omitempty" yaml:"next,omitempty"`
}

// OptionView describes a question option.
type OptionView struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	SubLabel string `json:"subLabel,omitempty" yaml:"sub_label,omitempty"`
	Value    any    `json:"value" yaml:"value"`
	Next     string `json:"next" yaml:"next"`
}

// FieldView describes a form field. Default is evaluated against the data
// passed to Describe.
type FieldView struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label" yaml:"label"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Advanced    bool      `json:"advanced,omitempty" yaml:"advanced,omitempty"`
	Validate    string    `json:"validate,omitempty" yaml:"validate,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
}

// Describe converts a step to its View. data feeds field defaults and may be nil.
func Describe(s Step, data map[string]any) View {
	h := s.Header()
	v := View{
		ID:          s.ID(),
		Type:        s.Kind(),
		Title:       h.Title,
		Description: h.Description,
	}

	switch s.Kind() {
	case KindQuestion:
		q := s.(*Question)
		v.Field = q.FieldName()
		for _, o := range q.Options {
			v.Options = append(v.Options, OptionView{
				ID:       o.ID,
				Label:    o.Label,
				SubLabel: o.SubLabel,
				Value:    o.Value,
				Next:     o.Next,
			})
		}
	case KindInstruction, KindCustom:
		in := s.(*Instruction)
		v.Content = in.Content.Ref
		v.Next = in.Next
		for _, f := range in.Fields {
			v.Fields = append(v.Fields, FieldView{
				Key:         f.Key,
				Label:       f.Label,
				Description: f.Description,
				Type:        f.Type,
				Required:    f.Required,
				Advanced:    f.Advanced,
				Validate:    f.Validate,
				Default:     f.DefaultValue(data),
			})
		}
	case KindResult:
		v.Content = s.(*Result).Content.Ref
	}

	return v
}

// DescribeGraph returns the views of all steps in declaration order.
func DescribeGraph(g *Graph) []View {
	views := make([]View, 0, g.Len())
	for _, s := range g.Steps() {
		views = append(views, Describe(s, nil))
	}
	return views
}
