package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline/guideline-converter/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "guideline-converter",
	Short: "Convert Guideline retirement-account PDF statements into CSV and ledger entries",
	Long: `guideline-converter extracts the transaction activity from Guideline
401(k) quarterly statement exports (PDF or pre-extracted text), attributes
each undated buy/sell/reinvest line to the dated payroll, fee, exchange or
dividend event that owns it, verifies the posting amounts against each
event's stated total, and writes the result as CSV rows or double-entry
ledger text.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
}

// loadConfig returns the file config when --config is set, defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}
