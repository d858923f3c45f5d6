// Package cli wires the gosln root command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/willibrandon/gosln/cmd/gosln/output"
)

var rootCmd = &cobra.Command{
	Use:   "gosln",
	Short: "Solution descriptor inspection and conversion",
	Long: `gosln parses build solution descriptors (.sln and .slnx) into a
project model and can inspect, validate, and convert them.

Complete documentation is available at https://github.com/willibrandon/gosln`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Console is the global console for CLI commands
var Console *output.Console

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	Console = output.DefaultConsole()

	rootCmd.PersistentFlags().StringP("verbosity", "v", "normal", "Display verbosity (quiet, normal, detailed)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		switch v, _ := cmd.Flags().GetString("verbosity"); v {
		case "quiet", "q":
			Console.SetVerbosity(output.VerbosityQuiet)
		case "detailed", "d":
			Console.SetVerbosity(output.VerbosityDetailed)
		default:
			Console.SetVerbosity(output.VerbosityNormal)
		}
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			Console.SetColors(false)
		}
	}
}

// SetupVersion configures version information after variables are set
func SetupVersion() {
	rootCmd.SetVersionTemplate(GetFullVersion() + "\n")
	rootCmd.Version = GetVersion()
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
