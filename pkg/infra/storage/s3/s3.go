package s3

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/m-mizutani/goerr/v2"
)

const contentType = "text/plain; charset=utf-8"

// Store writes metadata files to an S3 bucket as {prefix}/{locale}/{filename}
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3 store from the default AWS configuration chain
func New(ctx context.Context, bucket, prefix, region string, optFns ...func(*s3.Options)) (*Store, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required for S3 destination")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load AWS config", goerr.V("bucket", bucket))
	}

	return NewWithClient(s3.NewFromConfig(awsCfg, optFns...), bucket, prefix), nil
}

// NewWithClient creates an S3 store with a preconfigured client
func NewWithClient(client *s3.Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Key returns the object key of a metadata file
func (s *Store) Key(locale, filename string) string {
	return path.Join(s.prefix, locale, filename)
}

// Put uploads content, replacing an existing object
func (s *Store) Put(ctx context.Context, locale, filename string, content []byte) error {
	key := s.Key(locale, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put object", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}

	return nil
}
