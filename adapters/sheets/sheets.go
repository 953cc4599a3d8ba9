// Package sheets reads route tables from and persists reports to
// Google Sheets using a service-account identity. The core never sees
// credentials; they are loaded here and handed straight to the API
// client.
package sheets

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"porte-calc/adapters/tabular"
	"porte-calc/core/output"
	"porte-calc/core/types"
	"porte-calc/internal/errors"
	"porte-calc/internal/logging"
)

// Scopes required by the service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.readonly",
}

// Client wraps the Sheets API for tabular I/O
type Client struct {
	svc *sheets.Service
	log *zap.Logger
}

// NewClient builds a client from a service-account JSON key file
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "cannot read service account key", err)
	}
	jwt, err := google.JWTConfigFromJSON(raw, Scopes...)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid service account key", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "cannot build sheets client", err)
	}
	return &Client{svc: svc, log: logging.Logger}, nil
}

// Load reads a worksheet into a table. The first row is the header.
func (c *Client) Load(ctx context.Context, spreadsheetID, worksheet string) (*tabular.Table, error) {
	descriptor := "sheets://" + spreadsheetID + "/" + worksheet

	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError(descriptor, err, false)
	}
	if len(resp.Values) == 0 {
		return nil, errors.Newf(errors.TypeMalformedTable, "worksheet is empty: %s", descriptor)
	}

	header := stringRow(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rows = append(rows, stringRow(row))
	}
	return &tabular.Table{Header: header, Rows: rows}, nil
}

// WriteReport appends a report to a worksheet, creating the worksheet
// and its header when missing. On failure the report is untouched in
// memory; the caller may retry persistence without recomputing.
func (c *Client) WriteReport(ctx context.Context, spreadsheetID, worksheet string, rep *types.Report) error {
	descriptor := "sheets://" + spreadsheetID + "/" + worksheet

	if err := c.ensureWorksheet(ctx, spreadsheetID, worksheet); err != nil {
		return mapAPIError(descriptor, err, true)
	}
	if err := c.ensureHeader(ctx, spreadsheetID, worksheet); err != nil {
		return mapAPIError(descriptor, err, true)
	}

	values := make([][]interface{}, 0, len(rep.Rows)+2)
	for _, row := range output.ReportRows(rep) {
		values = append(values, anyRow(row))
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, worksheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return mapAPIError(descriptor, err, true)
	}

	c.log.Info("report appended to sheet",
		zap.String("spreadsheet", spreadsheetID),
		zap.String("worksheet", worksheet),
		zap.Int("rows", len(values)))
	return nil
}

func (c *Client) ensureWorksheet(ctx context.Context, spreadsheetID, worksheet string) error {
	doc, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == worksheet {
			return nil
		}
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: worksheet},
			},
		}},
	}).Context(ctx).Do()
	return err
}

func (c *Client) ensureHeader(ctx context.Context, spreadsheetID, worksheet string) error {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, worksheet+"!1:1").Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	_, err = c.svc.Spreadsheets.Values.
		Append(spreadsheetID, worksheet, &sheets.ValueRange{Values: [][]interface{}{anyRow(output.Header)}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}

func mapAPIError(descriptor string, err error, write bool) error {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case 403:
			// The usual cause: the spreadsheet is not shared with the
			// service account email.
			return errors.Permission("sheet rejected the service account; share it with the service account email", err).
				WithContext("descriptor", descriptor)
		case 404:
			if write {
				return errors.DestinationUnavailable(descriptor, err)
			}
			return errors.SourceUnavailable(descriptor, err)
		}
	}
	if write {
		return errors.DestinationUnavailable(descriptor, err)
	}
	return errors.SourceUnavailable(descriptor, err)
}

func stringRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = fmt.Sprint(cell)
	}
	return out
}

func anyRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}
