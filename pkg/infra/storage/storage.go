package storage

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/interfaces"
	"github.com/m-mizutani/onesky-appdesc/pkg/infra/storage/fs"
	"github.com/m-mizutani/onesky-appdesc/pkg/infra/storage/gcs"
	s3store "github.com/m-mizutani/onesky-appdesc/pkg/infra/storage/s3"
)

// ErrUnsupportedDestination is returned for an unknown destination scheme
var ErrUnsupportedDestination = goerr.New("unsupported destination")

// Options holds settings for remote stores
type Options struct {
	S3Region   string
	S3Options  []func(*s3.Options)
	GCSOptions []option.ClientOption
}

// New creates a metadata store for a destination.
//
// Supported destinations:
//   - local path or file:// URL
//   - gs://bucket/prefix
//   - s3://bucket/prefix
func New(ctx context.Context, destination string, opts Options) (interfaces.MetadataStore, error) {
	u, err := url.Parse(destination)
	// single letter schemes are Windows drive letters
	if err != nil || len(u.Scheme) <= 1 {
		return fs.New(destination), nil
	}

	prefix := strings.Trim(u.Path, "/")

	switch u.Scheme {
	case "file":
		return fs.New(u.Path), nil

	case "gs":
		return gcs.New(ctx, u.Host, prefix, opts.GCSOptions...)

	case "s3":
		return s3store.New(ctx, u.Host, prefix, opts.S3Region, opts.S3Options...)

	default:
		return nil, goerr.Wrap(ErrUnsupportedDestination, "unknown destination scheme",
			goerr.V("destination", destination),
			goerr.V("scheme", u.Scheme))
	}
}
