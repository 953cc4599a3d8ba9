// Package cmd - tariff command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// tariffCmd groups tariff table operations
var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Inspect and validate tariff tables",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// tariffValidateCmd loads a tariff source and reports rule problems
var tariffValidateCmd = &cobra.Command{
	Use:   "validate <source>",
	Short: "Validate a tariff source",
	Long: `Load a tariff source and check every rule. A malformed rule
makes the whole table invalid, the same as it would at compute time.

Examples:
  porte-calc tariff validate tariff.csv
  porte-calc tariff validate rules.hcl
  porte-calc tariff validate s3://tariffs/current.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTariff(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("OK: %d rules\n", table.Len())
		return nil
	},
}

func init() {
	tariffCmd.AddCommand(tariffValidateCmd)
}
