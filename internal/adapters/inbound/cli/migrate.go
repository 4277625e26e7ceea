package cli

import (
	"fmt"
	"path/filepath"

	"github.com/armshift/armshift/internal/adapters/outbound/backup"
	"github.com/armshift/armshift/internal/adapters/outbound/config"
	"github.com/armshift/armshift/internal/adapters/outbound/gitinfo"
	"github.com/armshift/armshift/internal/adapters/outbound/history"
	"github.com/armshift/armshift/internal/adapters/outbound/planstore"
	"github.com/armshift/armshift/internal/adapters/outbound/scanner"
	"github.com/armshift/armshift/internal/adapters/outbound/tui"
	"github.com/armshift/armshift/internal/application"
	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/catalog"
	"github.com/armshift/armshift/internal/logging"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var (
		dryRun      bool
		apply       bool
		withBackup  bool
		jsonOutput  bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "migrate [path]",
		Short: "Execute the migration plan",
		Long:  "Run the stored migration plan against the project, building one on the fly when none is stored. A dry run counts what would change; apply mode backs the tree up first and rewrites only high-confidence lines.",
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

			// Show past runs if requested
			if showHistory {
				entries, err := history.New().Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			mode := domain.ModeSimulate
			if apply {
				mode = domain.ModeApply
			}
			if mode == domain.ModeApply && !withBackup {
				return fmt.Errorf("apply without a backup is not supported; drop --backup=false or use --dry-run")
			}

			logger := logging.New("migrate", verbose)
			scanSvc := application.NewScanService(
				config.New(),
				scanner.New(catalog.Default(), logger),
				gitinfo.New(),
			)
			planSvc := application.NewPlanService(config.New(), scanSvc, planstore.New())
			svc := application.NewMigrateService(
				planSvc,
				application.NewExecutor(backup.New(logger), logger),
				planstore.New(),
				history.New(),
				gitinfo.New(),
				logger,
			)

			result, err := svc.Run(cmd.Context(), absPath, mode)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, result)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", true, "Simulate the plan without touching files")
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply high-confidence changes to the tree")
	cmd.Flags().BoolVar(&withBackup, "backup", true, "Back up the tree before applying")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show past migration runs")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "apply")

	return cmd
}
