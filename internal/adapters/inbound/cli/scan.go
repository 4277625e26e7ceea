package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/armshift/armshift/internal/adapters/outbound/config"
	"github.com/armshift/armshift/internal/adapters/outbound/gitinfo"
	"github.com/armshift/armshift/internal/adapters/outbound/sarifout"
	"github.com/armshift/armshift/internal/adapters/outbound/scanner"
	"github.com/armshift/armshift/internal/adapters/outbound/tui"
	"github.com/armshift/armshift/internal/application"
	"github.com/armshift/armshift/internal/domain/catalog"
	"github.com/armshift/armshift/internal/logging"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var (
		jsonOutput bool
		sarifPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project for architecture-specific code",
		Long:  "Walk a project tree and report x86 intrinsics, inline assembly, architecture-conditional blocks and platform-specific APIs that stand between the code and ARM.",
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

			logger := logging.New("scanner", verbose)
			svc := application.NewScanService(
				config.New(),
				scanner.New(catalog.Default(), logger),
				gitinfo.New(),
			)

			report, err := svc.Scan(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if sarifPath != "" {
				if err := sarifout.WriteFile(sarifPath, report); err != nil {
					return fmt.Errorf("writing SARIF report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", sarifPath)
			}

			if outputPath != "" {
				data, err := svc.RenderJSON(report)
				if err != nil {
					return fmt.Errorf("rendering report: %w", err)
				}
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", outputPath)
				return nil
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().StringVar(&sarifPath, "sarif", "", "Also write a SARIF 2.1.0 report to the given file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write the JSON report to a file instead of stdout")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
