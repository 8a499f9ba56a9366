package cmd

import (
	"github.com/spf13/cobra"

	"github.com/structviz/cifview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with an interactive wizard",
	Long:  `Runs an interactive wizard to configure cifview and writes a .cifview.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
