package steps

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is an immutable, validated set of steps.
type Graph struct {
	initial string
	steps   map[string]Step
	order   []string
}

// MalformedGraphError lists every problem found while validating a graph.
type MalformedGraphError struct {
	Problems []string
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("malformed step graph: %s", strings.Join(e.Problems, "; "))
}

// NewGraph builds a graph from copies of steps and validates it. Steps keep
// their declaration order for listing purposes.
func NewGraph(initial string, steps ...Step) (*Graph, error) {
	g := &Graph{
		initial: initial,
		steps:   make(map[string]Step, len(steps)),
		order:   make([]string, 0, len(steps)),
	}

	var problems []string
	for i, s := range steps {
		if s == nil {
			problems = append(problems, fmt.Sprintf("step #%d is nil", i))
			continue
		}
		id := s.ID()
		if id == "" {
			problems = append(problems, fmt.Sprintf("step #%d has an empty id", i))
			continue
		}
		if _, exists := g.steps[id]; exists {
			problems = append(problems, fmt.Sprintf("duplicate step id %q", id))
			continue
		}
		g.steps[id] = clone(s)
		g.order = append(g.order, id)
	}

	problems = append(problems, g.problems()...)
	if len(problems) > 0 {
		return nil, &MalformedGraphError{Problems: problems}
	}
	return g, nil
}

// clone copies s together with its option and field slices, so the caller
// cannot change the graph after validation.
func clone(s Step) Step {
	switch v := s.(type) {
	case *Question:
		c := *v
		c.Options = append([]Option(nil), v.Options...)
		return &c
	case *Instruction:
		c := *v
		c.Fields = append([]Field(nil), v.Fields...)
		return &c
	case *Result:
		c := *v
		return &c
	}
	return s
}

// MustGraph is like NewGraph but panics on a malformed graph. It is meant for
// package-level graph definitions.
func MustGraph(initial string, steps ...Step) *Graph {
	g, err := NewGraph(initial, steps...)
	if err != nil {
		panic(err)
	}
	return g
}

// Validate re-checks an existing graph.
func Validate(g *Graph) error {
	if g == nil {
		return &MalformedGraphError{Problems: []string{"graph is nil"}}
	}
	if problems := g.problems(); len(problems) > 0 {
		return &MalformedGraphError{Problems: problems}
	}
	return nil
}

func (g *Graph) problems() []string {
	var problems []string

	if g.initial == "" {
		problems = append(problems, "initial step id is empty")
	} else if _, ok := g.steps[g.initial]; !ok {
		problems = append(problems, fmt.Sprintf("initial step %q does not exist", g.initial))
	}

	for _, id := range g.order {
		s := g.steps[id]

		if s.Kind() == KindQuestion {
			q := s.(*Question)
			if len(q.Options) == 0 {
				problems = append(problems, fmt.Sprintf("question %q has no options", id))
			}
			seen := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if o.ID == "" {
					problems = append(problems, fmt.Sprintf("question %q has an option with an empty id", id))
				} else if seen[o.ID] {
					problems = append(problems, fmt.Sprintf("question %q has duplicate option %q", id, o.ID))
				}
				seen[o.ID] = true
				if o.Next == "" {
					problems = append(problems, fmt.Sprintf("option %q of %q has no next step", o.ID, id))
				}
			}
		}

		for _, target := range s.Targets() {
			if target == "" {
				continue
			}
			if _, ok := g.steps[target]; !ok {
				problems = append(problems, fmt.Sprintf("step %q points to missing step %q", id, target))
			}
		}
	}

	return problems
}

// Initial returns the ID of the initial step.
func (g *Graph) Initial() string { return g.initial }

// Len returns the number of steps.
func (g *Graph) Len() int { return len(g.steps) }

// Lookup returns the step with the given ID.
func (g *Graph) Lookup(id string) (Step, bool) {
	s, ok := g.steps[id]
	return s, ok
}

// MustLookup returns the step with the given ID and panics if it does not
// exist.
func (g *Graph) MustLookup(id string) Step {
	s, ok := g.steps[id]
	if !ok {
		panic(fmt.Sprintf("steps: step %q not found in validated graph", id))
	}
	return s
}

// Steps returns all steps in declaration order.
func (g *Graph) Steps() []Step {
	out := make([]Step, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.steps[id])
	}
	return out
}

// IDs returns the sorted step IDs.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	sort.Strings(ids)
	return ids
}

// Reachable returns the IDs reachable from the initial step, sorted.
func (g *Graph) Reachable() []string {
	visited := map[string]bool{}
	queue := []string{g.initial}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		s, ok := g.steps[id]
		if !ok {
			continue
		}
		visited[id] = true
		queue = append(queue, s.Targets()...)
	}

	ids := make([]string, 0, len(visited))
	for id := range visited {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
