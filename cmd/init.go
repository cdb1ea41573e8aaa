package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize themegen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a provider, quality tier, output directory and studio port, and writes .themegen.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
