// Package commands описывает CLI estate-finance.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloud-ru/estate-loan-calculator/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "estate-finance",
		Short:   "Калькулятор графика платежей по ипотеке и кредитам",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newScheduleCommand())
	rootCmd.AddCommand(newCompareCommand())

	return rootCmd
}
