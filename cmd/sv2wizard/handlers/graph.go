package handlers

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Graph output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// graphDocument is the YAML form of a wizard.
type graphDocument struct {
	Wizard  string       `yaml:"wizard"`
	Title   string       `yaml:"title"`
	Initial string       `yaml:"initial"`
	Steps   []steps.View `yaml:"steps"`
}

// Graph prints the step graph of a wizard.
func Graph(name, format string) error {
	def, err := flows.Get(name)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(graphDocument{
			Wizard:  def.Name,
			Title:   def.Title,
			Initial: def.Graph.Initial(),
			Steps:   steps.DescribeGraph(def.Graph),
		})
		if err != nil {
			return fmt.Errorf("failed to render graph: %w", err)
		}
		fmt.Print(string(out))
		return nil
	case FormatText, "":
		printGraph(def)
		return nil
	default:
		return fmt.Errorf("unknown format %q (available: %s, %s)", format, FormatText, FormatYAML)
	}
}

func printGraph(def flows.Definition) {
	g := def.Graph
	fmt.Printf("%s (%d steps, starts at %s)\n", def.Name, g.Len(), g.Initial())
	fmt.Println()

	for _, v := range steps.DescribeGraph(g) {
		fmt.Printf("%s [%s] %s\n", v.ID, v.Type, v.Title)
		for _, o := range v.Options {
			fmt.Printf("  %s -> %s\n", o.ID, o.Next)
		}
		if len(v.Fields) > 0 {
			keys := make([]string, 0, len(v.Fields))
			for _, f := range v.Fields {
				if f.Required {
					keys = append(keys, f.Key+"*")
				} else {
					keys = append(keys, f.Key)
				}
			}
			fmt.Printf("  fields: %s\n", strings.Join(keys, ", "))
		}
		if v.Next != "" {
			fmt.Printf("  -> %s\n", v.Next)
		}
	}

	if unreachable := unreachableSteps(g); len(unreachable) > 0 {
		fmt.Println()
		fmt.Printf("Unreachable steps: %s\n", strings.Join(unreachable, ", "))
	}
}

func unreachableSteps(g *steps.Graph) []string {
	reachable := make(map[string]bool)
	for _, id := range g.Reachable() {
		reachable[id] = true
	}
	var out []string
	for _, id := range g.IDs() {
		if !reachable[id] {
			out = append(out, id)
		}
	}
	return out
}
