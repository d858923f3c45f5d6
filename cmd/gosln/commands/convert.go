package commands

import (
	"github.com/spf13/cobra"

	"github.com/willibrandon/gosln/cmd/gosln/output"
	"github.com/willibrandon/gosln/solution"
)

// NewConvertCommand creates the convert command
func NewConvertCommand(console *output.Console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <SOLUTION>",
		Short: "Convert between descriptor formats",
		Long: `Loads a descriptor in whichever format it is in and writes it in the
other, next to the original.

Examples:
  gosln convert MyApp.sln    (writes MyApp.slnx)
  gosln convert MyApp.slnx   (writes MyApp.sln)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newPath, err := solution.Convert(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			console.Success("Wrote %s", newPath)
			return nil
		},
	}
	return cmd
}

// NewValidateCommand creates the validate command
func NewValidateCommand(console *output.Console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <SOLUTION>",
		Short: "Parse a descriptor and report problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := solution.ValidateSolutionFile(args[0]); err != nil {
				return err
			}
			model, err := solution.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, w := range model.Warnings {
				console.Warning("line %d: %s", w.Line, w.Message)
			}
			if len(model.Warnings) == 0 {
				console.Success("%s parsed cleanly (%d entries)", args[0], len(model.Projects))
			} else {
				console.Printf("%s parsed with %d warnings (%d entries)\n",
					args[0], len(model.Warnings), len(model.Projects))
			}
			return nil
		},
	}
	return cmd
}
