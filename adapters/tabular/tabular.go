// Package tabular defines the table shape the I/O layer hands to the
// core, plus source and destination descriptors. The core never sees
// where a table came from; adapters materialize one of these and the
// engine takes over.
package tabular

import (
	"strings"

	"porte-calc/internal/errors"
)

// Table is a fully materialized, immutable tabular source.
type Table struct {
	// Header holds the column names from the first source row
	Header []string

	// Rows holds the remaining rows, source order preserved
	Rows [][]string
}

// Kind identifies what a source descriptor points at
type Kind string

const (
	// KindCSV is a local CSV file
	KindCSV Kind = "csv"

	// KindHCL is a local HCL tariff document
	KindHCL Kind = "hcl"

	// KindJSON is a local JSON tariff document
	KindJSON Kind = "json"

	// KindS3 is a CSV object in S3
	KindS3 Kind = "s3"

	// KindSheet is a Google Sheets worksheet
	KindSheet Kind = "sheets"
)

// Source identifies where a table comes from
type Source struct {
	Kind Kind

	// Path is the local file path for csv/hcl/json sources
	Path string

	// Bucket and Key locate an S3 object
	Bucket string
	Key    string

	// SpreadsheetID and Worksheet locate a Google Sheets range
	SpreadsheetID string
	Worksheet     string
}

// ParseSource interprets a source descriptor string:
//
//	s3://bucket/key          S3 CSV object
//	sheets://<id>/<sheet>    Google Sheets worksheet
//	*.hcl                    HCL tariff document
//	*.json                   JSON tariff document
//	anything else            local CSV path
func ParseSource(descriptor string) (Source, error) {
	descriptor = strings.TrimSpace(descriptor)
	if descriptor == "" {
		return Source{}, errors.Config("empty source descriptor")
	}

	switch {
	case strings.HasPrefix(descriptor, "s3://"):
		rest := strings.TrimPrefix(descriptor, "s3://")
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return Source{}, errors.Newf(errors.TypeConfig, "invalid s3 descriptor: %s", descriptor)
		}
		return Source{Kind: KindS3, Bucket: bucket, Key: key}, nil

	case strings.HasPrefix(descriptor, "sheets://"):
		rest := strings.TrimPrefix(descriptor, "sheets://")
		id, worksheet, ok := strings.Cut(rest, "/")
		if !ok || id == "" || worksheet == "" {
			return Source{}, errors.Newf(errors.TypeConfig, "invalid sheets descriptor: %s", descriptor)
		}
		return Source{Kind: KindSheet, SpreadsheetID: id, Worksheet: worksheet}, nil

	case strings.HasSuffix(descriptor, ".hcl"):
		return Source{Kind: KindHCL, Path: descriptor}, nil

	case strings.HasSuffix(descriptor, ".json"):
		return Source{Kind: KindJSON, Path: descriptor}, nil

	default:
		return Source{Kind: KindCSV, Path: descriptor}, nil
	}
}

// String returns the descriptor form of the source
func (s Source) String() string {
	switch s.Kind {
	case KindS3:
		return "s3://" + s.Bucket + "/" + s.Key
	case KindSheet:
		return "sheets://" + s.SpreadsheetID + "/" + s.Worksheet
	default:
		return s.Path
	}
}
