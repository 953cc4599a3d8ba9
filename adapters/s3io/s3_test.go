package s3io

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"porte-calc/internal/errors"
)

type fakeS3 struct {
	body string
	err  error
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestLoadParsesObject(t *testing.T) {
	loader := NewWithClient(&fakeS3{body: "origin,destination,weight\nA,B,10\n"})
	table, err := loader.Load(context.Background(), "tariffs", "routes.csv")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "A" {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestLoadMissingObject(t *testing.T) {
	loader := NewWithClient(&fakeS3{err: &smithy.GenericAPIError{Code: "NoSuchKey", Message: "not found"}})
	_, err := loader.Load(context.Background(), "tariffs", "nope.csv")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsType(err, errors.TypeSourceUnavailable) {
		t.Fatalf("expected SOURCE_UNAVAILABLE, got %v", err)
	}
	if e := err.(*errors.Error); e.Context["code"] != "NoSuchKey" {
		t.Fatalf("expected the API error code in context, got %v", e.Context)
	}
}
