package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

var verbose bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armshift",
		Short: "Move architecture-bound code toward ARM",
		Long:  "Armshift finds x86-specific code in a project, turns the findings into a risk-ordered migration plan and applies the mechanical part of that plan for you.",

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newCompileCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
