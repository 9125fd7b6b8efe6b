// Package prerequisites checks for the host tools a generated deployment
// needs, so the operator learns about them before running the launch
// command.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/stratum-mining/sv2-wizard/internal/deploy"
)

// Tool represents a host tool that a deployment may need.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates the launch command cannot work without it.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Docker runs the generated docker compose setup.
func Docker() Tool {
	return Tool{
		Name:        "docker",
		Required:    true,
		Description: "Runs the docker compose setup",
		InstallURL:  "https://docs.docker.com/get-docker/",
	}
}

// BitcoinNode provides block templates over IPC.
func BitcoinNode() Tool {
	return Tool{
		Name:        "bitcoin-node",
		Required:    false,
		Description: "Bitcoin Core with IPC support provides the block templates",
		InstallURL:  "https://bitcoincore.org/en/download/",
	}
}

// ForPlan returns the tools the plan's launch command relies on. Bitcoin
// Core is optional because the node often runs on another host.
func ForPlan(p *deploy.Plan) []Tool {
	var tools []Tool
	if p.Method == deploy.Docker {
		tools = append(tools, Docker())
	}
	if p.Topology == deploy.FullStack || p.UseJDC {
		tools = append(tools, BitcoinNode())
	}
	return tools
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Warnings describes every missing tool in one line each.
func (r *CheckResults) Warnings() []string {
	warnings := make([]string, 0, len(r.Missing))
	for _, tool := range r.Missing {
		kind := "optional"
		if tool.Required {
			kind = "required"
		}
		warnings = append(warnings, fmt.Sprintf("%s not found in PATH (%s): %s, see %s",
			tool.Name, kind, tool.Description, tool.InstallURL))
	}
	return warnings
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}
