// Package cmd - zone command
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"porte-calc/core/zone"
	"porte-calc/internal/config"
)

var zoneDistance string

// zoneCmd groups distance-zone pricing operations
var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Distance-zone pricing",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// zoneQuoteCmd prices a single distance against the configured bands
var zoneQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote a charge for a delivery distance",
	Long: `Price a delivery distance against the configured zone bands.
Distances beyond the last band pay the last band price plus the
per-kilometer surcharge.

Examples:
  porte-calc zone quote --distance 4
  porte-calc zone quote --distance 25.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, err := decimal.NewFromString(zoneDistance)
		if err != nil {
			return fmt.Errorf("invalid distance %q: %w", zoneDistance, err)
		}

		schedule, err := zone.FromConfig(config.Get().Zones)
		if err != nil {
			return err
		}

		price := schedule.Price(distance)
		fmt.Printf("%s km -> %s EUR\n", distance.String(), price.StringFixed(2))
		return nil
	},
}

func init() {
	zoneQuoteCmd.Flags().StringVarP(&zoneDistance, "distance", "d", "", "delivery distance in kilometers (required)")
	zoneQuoteCmd.MarkFlagRequired("distance")
	zoneCmd.AddCommand(zoneQuoteCmd)
}
