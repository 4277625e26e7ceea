package cli

import (
	"fmt"
	"path/filepath"

	"github.com/armshift/armshift/internal/adapters/outbound/toolchain"
	"github.com/armshift/armshift/internal/logging"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var (
		targetList []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "compile [path]",
		Short: "Cross-compile the project for ARM targets",
		Long:  "Detect the project's build system and drive it once per target, wiring GOOS/GOARCH or a cross C toolchain as needed. Useful to prove a migrated tree actually builds.",
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

			builder := toolchain.New(logging.New("compile", verbose))

			var results []*toolchain.Result
			var failed int
			for _, target := range targetList {
				result, err := builder.Build(cmd.Context(), absPath, target)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "✘ %s: %v\n", target, err)
					continue
				}
				results = append(results, result)
				if !jsonOutput {
					fmt.Fprintf(cmd.OutOrStdout(), "✔ %s → %s (%s)\n", target, result.Output, result.BuildSystem)
				}
			}

			if jsonOutput {
				if err := renderJSON(cmd, results); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d targets failed", failed, len(targetList))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&targetList, "target", []string{"linux/arm64"}, "Target platform as os/arch (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output build results as JSON")

	return cmd
}
