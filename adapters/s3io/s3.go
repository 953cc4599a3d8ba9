// Package s3io loads CSV tables from S3 objects.
package s3io

import (
	"context"
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"porte-calc/adapters/csvio"
	"porte-calc/adapters/tabular"
	"porte-calc/internal/errors"
)

// API is the subset of the S3 client the loader needs
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader fetches CSV objects from S3
type Loader struct {
	client API
}

// New creates a Loader using the ambient AWS configuration
func New(ctx context.Context) (*Loader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "cannot load AWS configuration", err)
	}
	return &Loader{client: s3.NewFromConfig(cfg)}, nil
}

// NewWithClient creates a Loader with an explicit client
func NewWithClient(client API) *Loader {
	return &Loader{client: client}
}

// Load fetches s3://bucket/key and parses it as CSV
func (l *Loader) Load(ctx context.Context, bucket, key string) (*tabular.Table, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		descriptor := "s3://" + bucket + "/" + key
		var apiErr smithy.APIError
		if stderrors.As(err, &apiErr) {
			return nil, errors.SourceUnavailable(descriptor, err).WithContext("code", apiErr.ErrorCode())
		}
		return nil, errors.SourceUnavailable(descriptor, err)
	}
	defer out.Body.Close()

	return csvio.Parse(out.Body)
}
