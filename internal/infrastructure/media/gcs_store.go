package media

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/seva-samiti/connect-backend/pkg/helpers"
)

// GCSStore keeps activity media in a Google Cloud Storage bucket with
// public read access.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

// Remove deletes the object behind a public URL. URLs pointing outside the
// configured bucket are ignored.
func (s *GCSStore) Remove(ctx context.Context, objectURL string) error {
	prefix := helpers.PublicURL(s.bucket, "")
	if !strings.HasPrefix(objectURL, prefix) {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, strings.TrimPrefix(objectURL, prefix))
}
