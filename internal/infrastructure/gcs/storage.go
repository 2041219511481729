package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/thesarya/expense/internal/application/attachments"
	"github.com/thesarya/expense/pkg/config"
)

var _ attachments.BlobStore = (*Store)(nil)

// Store keeps expense and inventory attachments in a Google Cloud Storage
// bucket. Objects are publicly readable; the returned URL goes straight into
// the attachment reference.
type Store struct {
	client *storage.Client
	bucket string
}

// NewStore builds the store. With CredentialsJSON set the client uses it;
// otherwise Application Default Credentials apply (service account on Cloud
// Run, GOOGLE_APPLICATION_CREDENTIALS locally).
func NewStore(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs: bucket is required")
	}
	var (
		client *storage.Client
		err    error
	)
	if cfg.CredentialsJSON != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	if _, err := client.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gcs: bucket %q not accessible: %w", cfg.Bucket, err)
	}
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Upload streams r into the bucket under object and returns the public URL.
func (s *Store) Upload(ctx context.Context, object, contentType string, r io.Reader) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object), nil
}

// Delete removes an object; deleting a missing object is not an error.
func (s *Store) Delete(ctx context.Context, object string) error {
	err := s.client.Bucket(s.bucket).Object(object).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
