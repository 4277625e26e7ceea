package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/armshift/armshift/internal/adapters/outbound/config"
	"github.com/armshift/armshift/internal/adapters/outbound/gitinfo"
	"github.com/armshift/armshift/internal/adapters/outbound/planstore"
	"github.com/armshift/armshift/internal/adapters/outbound/scanner"
	"github.com/armshift/armshift/internal/adapters/outbound/tui"
	"github.com/armshift/armshift/internal/application"
	"github.com/armshift/armshift/internal/domain/catalog"
	"github.com/armshift/armshift/internal/logging"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var (
		jsonOutput   bool
		markdownPath string
		target       string
	)

	cmd := &cobra.Command{
		Use:   "plan [path]",
		Short: "Build an ordered migration plan",
		Long:  "Scan the project and turn the findings into a migration plan: per-file edits with confidence ratings, build system checklists, dependency actions and a testing strategy. The plan is stored for a later migrate run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			logger := logging.New("planner", verbose)
			scanSvc := application.NewScanService(
				config.New(),
				scanner.New(catalog.Default(), logger),
				gitinfo.New(),
			)
			svc := application.NewPlanService(config.New(), scanSvc, planstore.New())

			plan, err := svc.BuildPlan(cmd.Context(), absPath, target)
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}

			if markdownPath != "" {
				md := svc.RenderMarkdown(plan)
				if err := os.WriteFile(markdownPath, []byte(md), 0644); err != nil {
					return fmt.Errorf("writing markdown plan: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", markdownPath)
			}

			if jsonOutput {
				return renderJSON(cmd, plan)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan as JSON")
	cmd.Flags().StringVar(&markdownPath, "markdown", "", "Also write the plan as markdown to the given file")
	cmd.Flags().StringVar(&target, "target", "", "Target architecture (defaults to the configured one)")

	return cmd
}
