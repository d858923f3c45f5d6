// Package commands implements the gosln subcommands.
package commands

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/willibrandon/gosln/cmd/gosln/output"
	"github.com/willibrandon/gosln/solution"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand(console *output.Console) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <SOLUTION>",
		Short: "Show a summary of a solution descriptor",
		Long: `Parses a solution descriptor and prints its projects, folders,
configurations, and any recovered warnings.

Examples:
  gosln inspect MyApp.sln
  gosln inspect MyApp.slnx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := solution.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return output.WriteJSON(os.Stdout, solutionOutput(model))
			}
			printSummary(console, model)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func printSummary(console *output.Console, model *solution.SolutionModel) {
	console.Header("Solution %s", model.FilePath)
	if model.FormatVersion != "" {
		console.Printf("Format version: %s\n", model.FormatVersion)
	}
	if model.VisualStudioVersion != "" {
		console.Printf("Tool version:   %s\n", model.VisualStudioVersion)
	}

	projects, folders, webs := 0, 0, 0
	for i := range model.Projects {
		switch model.Projects[i].Type {
		case solution.TypeSolutionFolder:
			folders++
		case solution.TypeWebProject:
			webs++
		default:
			projects++
		}
	}
	console.Printf("Entries: %d (%d projects, %d folders, %d web)\n",
		len(model.Projects), projects, folders, webs)

	if len(model.Configurations) > 0 {
		console.Printf("Configurations:\n")
		for _, cfg := range model.Configurations {
			console.Printf("  %s\n", cfg.FullName)
		}
	}

	for _, w := range model.Warnings {
		console.Warning("line %d: %s", w.Line, w.Message)
	}
}

func solutionOutput(model *solution.SolutionModel) *output.SolutionOutput {
	out := &output.SolutionOutput{
		SchemaVersion: output.CurrentSchemaVersion,
		Path:          model.FilePath,
		FormatVersion: model.FormatVersion,
		Warnings:      []string{},
	}
	for _, cfg := range model.Configurations {
		out.Configurations = append(out.Configurations, cfg.FullName)
	}
	for i := range model.Projects {
		p := &model.Projects[i]
		po := output.ProjectOutput{
			GUID:         p.GUID,
			Name:         p.Name,
			Type:         p.Type.String(),
			Parent:       p.ParentGUID,
			Dependencies: p.Dependencies,
		}
		if p.Type != solution.TypeSolutionFolder {
			po.Path = p.Path
		}
		for _, ref := range p.ProjectReferences {
			po.References = append(po.References, ref.GUID)
		}
		if len(p.WebProperties) > 0 {
			po.WebConfigs = make(map[string]string, len(p.WebProperties))
			var names []string
			for name := range p.WebProperties {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				po.WebConfigs[name] = p.WebProperties[name].VirtualPath
			}
		}
		out.Projects = append(out.Projects, po)
	}
	for _, w := range model.Warnings {
		out.Warnings = append(out.Warnings, w.Message)
	}
	return out
}
