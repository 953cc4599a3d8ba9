// Package cmd - compute command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"porte-calc/adapters/csvio"
	"porte-calc/adapters/hcltariff"
	"porte-calc/adapters/jsontariff"
	"porte-calc/adapters/s3io"
	"porte-calc/adapters/sheets"
	"porte-calc/adapters/tabular"
	"porte-calc/core/engine"
	"porte-calc/core/output"
	"porte-calc/core/route"
	"porte-calc/core/tariff"
	"porte-calc/core/types"
	"porte-calc/internal/config"
	"porte-calc/internal/errors"
	"porte-calc/internal/logging"
)

var (
	tariffSource string
	routeSource  string
	outputFormat string
	outputFile   string
	sheetDest    string
	appendLog    string
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute charges for a set of routes",
	Long: `Resolve each route record against the tariff table and compute
its charge. Unmatched routes appear in the report with a reason.

Tariff sources: local CSV, HCL (.hcl), JSON (.json), s3://bucket/key,
sheets://<spreadsheet-id>/<worksheet>. Routes are always CSV shaped
(local file, S3 object or worksheet).

Examples:
  porte-calc compute --tariff tariff.csv --routes routes.csv
  porte-calc compute --tariff rules.hcl --routes routes.csv --format json
  porte-calc compute --tariff s3://tariffs/current.csv --routes routes.csv
  porte-calc compute --tariff tariff.csv --routes routes.csv \
    --sheet sheets://1aBcD.../Portes --append-log portes.csv`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&tariffSource, "tariff", "t", "", "tariff source descriptor (required)")
	computeCmd.Flags().StringVarP(&routeSource, "routes", "r", "", "route source descriptor (required)")
	computeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, csv)")
	computeCmd.Flags().StringVarP(&outputFile, "out", "o", "", "write the report to a CSV file")
	computeCmd.Flags().StringVar(&sheetDest, "sheet", "", "append the report to a Google Sheets worksheet (sheets://id/worksheet)")
	computeCmd.Flags().StringVar(&appendLog, "append-log", "", "append report rows to a local CSV log")
	computeCmd.MarkFlagRequired("tariff")
	computeCmd.MarkFlagRequired("routes")
}

func runCompute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	table, err := loadTariff(ctx, tariffSource)
	if err != nil {
		return err
	}

	rows, err := loadRoutes(ctx, routeSource)
	if err != nil {
		return err
	}

	rep, err := engine.New().Run(ctx, table, rows)
	if err != nil {
		return err
	}

	format := output.Format(outputFormat)
	if outputFormat == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	if err := output.Render(os.Stdout, format, rep); err != nil {
		return err
	}

	if outputFile != "" {
		if err := csvio.WriteReport(outputFile, rep); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outputFile)
	}

	logPath := appendLog
	if logPath == "" {
		logPath = cfg.Output.AppendLog
	}
	if logPath != "" {
		if err := csvio.AppendLog(logPath, rep); err != nil {
			return err
		}
	}

	// The configured spreadsheet is only used when credentials are
	// configured too; an explicit --sheet always attempts the upload.
	dest := sheetDest
	if dest == "" && cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsFile != "" {
		dest = "sheets://" + cfg.Sheets.SpreadsheetID + "/" + cfg.Sheets.Worksheet
	}
	if dest != "" {
		if err := uploadReport(ctx, dest, rep); err != nil {
			return err
		}
	}

	return nil
}

// loadTariff materializes a tariff table from any supported source
func loadTariff(ctx context.Context, descriptor string) (*types.TariffTable, error) {
	src, err := tabular.ParseSource(descriptor)
	if err != nil {
		return nil, err
	}

	logging.Sugar.Debugw("loading tariff", "source", src.String(), "kind", src.Kind)

	switch src.Kind {
	case tabular.KindHCL:
		return hcltariff.Load(src.Path)
	case tabular.KindJSON:
		return jsontariff.Load(src.Path)
	case tabular.KindS3:
		loader, err := s3io.New(ctx)
		if err != nil {
			return nil, err
		}
		tbl, err := loader.Load(ctx, src.Bucket, src.Key)
		if err != nil {
			return nil, err
		}
		return tariff.Load(tbl.Header, tbl.Rows)
	case tabular.KindSheet:
		client, err := sheetsClient(ctx)
		if err != nil {
			return nil, err
		}
		tbl, err := client.Load(ctx, src.SpreadsheetID, src.Worksheet)
		if err != nil {
			return nil, err
		}
		return tariff.Load(tbl.Header, tbl.Rows)
	default:
		tbl, err := csvio.Load(src.Path)
		if err != nil {
			return nil, err
		}
		return tariff.Load(tbl.Header, tbl.Rows)
	}
}

// loadRoutes materializes route rows from a CSV-shaped source
func loadRoutes(ctx context.Context, descriptor string) ([]route.Row, error) {
	src, err := tabular.ParseSource(descriptor)
	if err != nil {
		return nil, err
	}

	var tbl *tabular.Table
	switch src.Kind {
	case tabular.KindS3:
		loader, err := s3io.New(ctx)
		if err != nil {
			return nil, err
		}
		tbl, err = loader.Load(ctx, src.Bucket, src.Key)
		if err != nil {
			return nil, err
		}
	case tabular.KindSheet:
		client, err := sheetsClient(ctx)
		if err != nil {
			return nil, err
		}
		tbl, err = client.Load(ctx, src.SpreadsheetID, src.Worksheet)
		if err != nil {
			return nil, err
		}
	case tabular.KindHCL, tabular.KindJSON:
		return nil, errors.Newf(errors.TypeConfig, "route source must be CSV shaped: %s", descriptor)
	default:
		tbl, err = csvio.Load(src.Path)
		if err != nil {
			return nil, err
		}
	}

	return route.Load(tbl.Header, tbl.Rows)
}

func uploadReport(ctx context.Context, descriptor string, rep *types.Report) error {
	src, err := tabular.ParseSource(descriptor)
	if err != nil {
		return err
	}
	if src.Kind != tabular.KindSheet {
		return errors.Newf(errors.TypeConfig, "report upload target must be a sheets:// descriptor: %s", descriptor)
	}

	client, err := sheetsClient(ctx)
	if err != nil {
		return err
	}
	if err := client.WriteReport(ctx, src.SpreadsheetID, src.Worksheet, rep); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report appended to %s\n", descriptor)
	return nil
}

func sheetsClient(ctx context.Context) (*sheets.Client, error) {
	cfg := config.Get()
	if cfg.Sheets.CredentialsFile == "" {
		return nil, errors.Config("sheets.credentials_file is not set")
	}
	return sheets.NewClient(ctx, cfg.Sheets.CredentialsFile)
}
