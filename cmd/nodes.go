package cmd

import (
	"github.com/spf13/cobra"
	"github.com/theWizardsBaker/sbatch-gen/internal/wizard"
)

var nodesCmd = &cobra.Command{
	Use:     "nodes",
	Aliases: []string{"ls"},
	Short:   "List cluster nodes and their free resources",
	Long: `List the nodes returned by sinfo with CPU, memory and time limits.

Nodes that are not "up" are shown in red. The numbers match the selection
numbers used by the interactive generator.`,
	Example: `  sbatch-gen nodes                  # Query sinfo and list nodes
  sbatch-gen nodes --input sinfo.txt  # List nodes from a saved table`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := loadNodes(cmd)
		if err != nil {
			return err
		}
		wizard.WriteNodeList(cmd.OutOrStdout(), nodes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nodesCmd)
}
