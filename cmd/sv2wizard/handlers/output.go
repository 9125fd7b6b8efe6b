package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/stratum-mining/sv2-wizard/internal/bundle"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/platform/s3"
	"github.com/stratum-mining/sv2-wizard/internal/util/prerequisites"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/prompt"
)

// OutputOptions control where generated files go.
type OutputOptions struct {
	Dir     string
	Zip     bool
	Publish string
}

// Factory function variables for output - can be replaced in tests.
var (
	// newPublisher creates the S3 publisher for an s3:// URL.
	newPublisher = func(ctx context.Context, rawURL string) (bundle.Publisher, error) {
		target, err := s3.ParseURL(rawURL)
		if err != nil {
			return nil, err
		}
		return s3.NewPublisher(ctx, s3.ConfigFromEnv(), target, s3.WithLogger(logger))
	}

	// emitBundle writes the generated files.
	emitBundle = bundle.Emit

	// checkTools looks up the host tools the launch command needs.
	checkTools = prerequisites.Check
)

// outputDir resolves the output directory flag.
func outputDir(dir string) string {
	if dir != "" {
		return dir
	}
	return envOr(EnvOutput, ".")
}

// generate builds the plan of a finished session, writes its files and
// prints the summary.
func generate(ctx context.Context, def flows.Definition, data map[string]any, opts OutputOptions) (*deploy.Plan, error) {
	plan, err := deploy.NewPlan(def.Topology, data, deploy.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build deployment plan: %w", err)
	}

	emitOpts := bundle.Options{
		Dir:    outputDir(opts.Dir),
		Folder: bundle.DefaultFolder,
		Zip:    opts.Zip,
		Log:    logger,
	}
	if opts.Publish != "" {
		pub, err := newPublisher(ctx, opts.Publish)
		if err != nil {
			return nil, fmt.Errorf("failed to set up publishing: %w", err)
		}
		emitOpts.Publisher = pub
	}

	res, err := emitBundle(ctx, plan.Files(), emitOpts)
	if res != nil {
		printWritten(res)
	}
	if err != nil {
		return plan, fmt.Errorf("failed to write configuration: %w", err)
	}

	prompt.PrintPlan(os.Stdout, plan)
	prompt.PrintWarnings(os.Stdout, checkTools(prerequisites.ForPlan(plan)).Warnings())
	return plan, nil
}

// printWritten prints where the files went.
func printWritten(res *bundle.Result) {
	fmt.Println()
	if res.Fallback {
		fmt.Println("Could not create config.zip, wrote the files individually.")
	}
	if res.Archive != "" {
		fmt.Printf("  Archive: %s\n", res.Archive)
	}
	for _, f := range res.Files {
		fmt.Printf("  File:    %s\n", f)
	}
	if res.Published != "" {
		fmt.Printf("  Published: %s\n", res.Published)
	}
}
