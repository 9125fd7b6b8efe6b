package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/stratum-mining/sv2-wizard/internal/deploy"
)

// PrintHeader writes the wizard banner.
func PrintHeader(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, subtitleStyle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

// PrintPlan writes the deployment summary of p: generated files, launch
// commands, next steps and warnings.
func PrintPlan(w io.Writer, p *deploy.Plan) {
	fmt.Fprintln(w, sectionStyle.Render("Generated files"))
	for _, name := range p.Names() {
		fmt.Fprintln(w, fileStyle.Render(checkMark+" "+name))
	}

	fmt.Fprintln(w, sectionStyle.Render("Launch"))
	for _, line := range strings.Split(p.LaunchCommand, "\n") {
		fmt.Fprintln(w, commandStyle.Render(line))
	}

	fmt.Fprintln(w, sectionStyle.Render("Next steps"))
	for i, step := range p.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}

	fmt.Fprintln(w, sectionStyle.Render("Miner endpoint"))
	fmt.Fprintln(w, commandStyle.Render(p.ConnectionString))

	PrintWarnings(w, p.Warnings)
}

// PrintWarnings writes one line per warning.
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, sectionStyle.Render("Warnings"))
	for _, warning := range warnings {
		fmt.Fprintln(w, warningStyle.Render(warnMark+" "+warning))
	}
}
