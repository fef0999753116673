package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cisolate/cisolate/internal/domain"
	m "github.com/cisolate/cisolate/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <workspace> [-- <parser flags...>]",
		Short: "List defined functions and their dependency counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, extra, err := splitWorkspaceArgs(cmd, args)
			if err != nil {
				return err
			}

			outRoot := m.Path(viper.GetString(outRootConfigKey))
			layout := domain.ResolveLayout(workspace, outRoot, extra)

			return workflow.List(cmd.Context(), layout)
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
