package flows

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// ErrUnknownWizard is returned by Get for names that are not registered.
var ErrUnknownWizard = errors.New("unknown wizard")

// Definition is a named wizard: its graph plus the topology its result
// steps deploy.
type Definition struct {
	Name     string
	Title    string
	Subtitle string
	Topology deploy.Topology
	Graph    *steps.Graph
}

var registry = map[string]Definition{}

func register(d Definition) Definition {
	if _, exists := registry[d.Name]; exists {
		panic(fmt.Sprintf("flows: wizard %q registered twice", d.Name))
	}
	registry[d.Name] = d
	return d
}

// Get returns the wizard registered under name.
func Get(name string) (Definition, error) {
	d, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownWizard, name, Names())
	}
	return d, nil
}

// Names returns the registered wizard names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered wizard, sorted by name.
func All() []Definition {
	out := make([]Definition, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}
