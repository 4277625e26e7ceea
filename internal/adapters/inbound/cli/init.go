package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/armshift/armshift/internal/domain"
	"github.com/spf13/cobra"
)

const configFileName = ".armshift.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .armshift.yaml configuration file",
		Long:  "Create a .armshift.yaml with the default target, extension allow-list and ignore list, ready to edit.",
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

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig()), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .armshift.yaml")

	return cmd
}

func generateConfig() string {
	var b strings.Builder

	b.WriteString("# armshift configuration\n\n")
	fmt.Fprintf(&b, "# Architecture the migration plan targets (%s).\n", strings.Join(domain.ValidTargetArchitectures, " or "))
	fmt.Fprintf(&b, "target_architecture: %s\n\n", domain.DefaultTargetArchitecture)

	b.WriteString("# File extensions the scanner looks at.\n")
	b.WriteString("scannable_extensions:\n")
	for _, ext := range domain.DefaultScannableExtensions {
		fmt.Fprintf(&b, "  - %q\n", ext)
	}
	b.WriteString("\n# Paths containing any of these substrings are skipped.\n")
	b.WriteString("ignore_path_substrings:\n")
	for _, sub := range domain.DefaultIgnoreSubstrings {
		fmt.Fprintf(&b, "  - %s\n", sub)
	}

	return b.String()
}
