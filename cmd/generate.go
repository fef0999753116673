package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cisolate/cisolate/internal/domain"
	m "github.com/cisolate/cisolate/internal/model"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <workspace> [-- <parser flags...>]",
		Short: "Generate test packages for every defined function",
		Long:  generateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, extra, err := splitWorkspaceArgs(cmd, args)
			if err != nil {
				return err
			}

			outRoot := m.Path(viper.GetString(outRootConfigKey))
			layout := domain.ResolveLayout(workspace, outRoot, extra)

			return workflow.Generate(cmd.Context(), layout)
		},
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
