package gcs

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

const contentType = "text/plain; charset=utf-8"

// Store writes metadata files to a Cloud Storage bucket as
// {prefix}/{locale}/{filename}
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// New creates a Cloud Storage store with application default credentials
// unless opts say otherwise
func New(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*Store, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required for Cloud Storage destination")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", bucket))
	}

	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Key returns the object name of a metadata file
func (s *Store) Key(locale, filename string) string {
	return path.Join(s.prefix, locale, filename)
}

// Put uploads content, replacing an existing object
func (s *Store) Put(ctx context.Context, locale, filename string, content []byte) error {
	key := s.Key(locale, filename)

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to upload object", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}

	return nil
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
