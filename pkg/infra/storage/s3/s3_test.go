package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/interfaces"
	"github.com/m-mizutani/onesky-appdesc/pkg/infra/storage/s3"
)

var _ interfaces.MetadataStore = (*s3.Store)(nil)

type recordedPut struct {
	method      string
	path        string
	contentType string
	body        string
}

func newFakeS3(t *testing.T, status int) (*awss3.Client, *[]recordedPut) {
	var mu sync.Mutex
	var puts []recordedPut

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		puts = append(puts, recordedPut{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		mu.Unlock()

		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	client := awss3.New(awss3.Options{
		Region:                     "us-east-1",
		BaseEndpoint:               aws.String(server.URL),
		UsePathStyle:               true,
		Credentials:                credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "SECRET", ""),
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		RetryMaxAttempts:           1,
	})

	return client, &puts
}

func TestStore_Put(t *testing.T) {
	client, puts := newFakeS3(t, http.StatusOK)
	store := s3.NewWithClient(client, "release-bucket", "metadata")

	err := store.Put(context.Background(), "en-US", "release_notes.txt", []byte("Bug fixes and improvements"))
	gt.NoError(t, err)

	gt.A(t, *puts).Length(1)
	put := (*puts)[0]
	gt.Equal(t, put.method, http.MethodPut)
	gt.Equal(t, put.path, "/release-bucket/metadata/en-US/release_notes.txt")
	gt.Equal(t, put.contentType, "text/plain; charset=utf-8")
	gt.String(t, put.body).Contains("Bug fixes and improvements")
}

func TestStore_Put_Error(t *testing.T) {
	client, _ := newFakeS3(t, http.StatusForbidden)
	store := s3.NewWithClient(client, "release-bucket", "")

	err := store.Put(context.Background(), "ja", "name.txt", []byte("Foo"))
	gt.Error(t, err)
}

func TestStore_Key(t *testing.T) {
	gt.Equal(t, s3.NewWithClient(nil, "b", "").Key("ja", "name.txt"), "ja/name.txt")
	gt.Equal(t, s3.NewWithClient(nil, "b", "a/b/").Key("ja", "name.txt"), "a/b/ja/name.txt")
}

func TestNew_RequiresBucket(t *testing.T) {
	store, err := s3.New(context.Background(), "", "metadata", "us-east-1")
	gt.Error(t, err)
	gt.Value(t, store).Nil()
}
