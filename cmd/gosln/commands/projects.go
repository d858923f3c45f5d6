package commands

import (
	"github.com/spf13/cobra"

	"github.com/willibrandon/gosln/cmd/gosln/output"
	"github.com/willibrandon/gosln/solution"
)

// NewProjectsCommand creates the projects command
func NewProjectsCommand(console *output.Console) *cobra.Command {
	var includeFolders bool

	cmd := &cobra.Command{
		Use:   "projects <SOLUTION>",
		Short: "List project entries in declaration order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := solution.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for i := range model.Projects {
				p := &model.Projects[i]
				if p.Type == solution.TypeSolutionFolder && !includeFolders {
					continue
				}
				console.Printf("%-14s %s\n", "["+p.Type.String()+"]", p.Name)
				console.Detail("    guid:   %s", p.GUID)
				if p.Type != solution.TypeSolutionFolder {
					console.Detail("    path:   %s", p.Path)
				}
				if p.ParentGUID != "" {
					if parent, ok := model.EntryByGUID(p.ParentGUID); ok {
						console.Detail("    parent: %s", parent.Name)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeFolders, "folders", false, "Include solution folders")
	return cmd
}

// NewDepsCommand creates the deps command
func NewDepsCommand(console *output.Console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <SOLUTION>",
		Short: "Show declared dependency edges",
		Long: `Prints the declared build dependencies of each project. Only declared
edges are shown; no transitive closure is computed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := solution.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for i := range model.Projects {
				p := &model.Projects[i]
				if len(p.Dependencies) == 0 && len(p.ProjectReferences) == 0 {
					continue
				}
				console.Println(p.Name)
				for _, dep := range p.Dependencies {
					name := dep
					if target, ok := model.EntryByGUID(dep); ok {
						name = target.Name
					}
					console.Printf("  depends on %s\n", name)
				}
				for _, ref := range p.ProjectReferences {
					console.Printf("  references %s (%s)\n", ref.Name, ref.GUID)
				}
			}
			return nil
		},
	}
	return cmd
}
