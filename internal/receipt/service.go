// Package receipt stores receipt images in an object store and hands back
// the opaque URL persisted on the transaction.
package receipt

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=blobstore_mock.go -package=receipt
type BlobStore interface {
	// Write streams the object under the given key and returns once the
	// upload is finalized.
	Write(ctx context.Context, key, contentType string, r io.Reader) error
	Remove(ctx context.Context, key string) error
}

type Service struct {
	store   BlobStore
	baseURL string
}

// NewService wires a blob store and the public base URL objects are served
// from.
func NewService(store BlobStore, baseURL string) *Service {
	return &Service{store: store, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Upload stores a receipt image scoped under the owner and returns its
// public URL.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, filename, contentType string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))

	key := fmt.Sprintf("receipts/%s/%s%s", ownerID, uuid.New(), ext)

	if err := s.store.Write(ctx, key, contentType, r); err != nil {
		return "", fmt.Errorf("storing receipt: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes a previously uploaded receipt by its URL. URLs outside the
// configured base are ignored.
func (s *Service) Delete(ctx context.Context, url string) error {
	key, found := strings.CutPrefix(url, s.baseURL+"/")
	if !found {
		return nil
	}

	if err := s.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("removing receipt: %w", err)
	}

	return nil
}

// GCSStore is the Google Cloud Storage implementation of BlobStore.
type GCSStore struct {
	bucket *storage.BucketHandle
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{bucket: client.Bucket(bucket)}
}

func (g *GCSStore) Write(ctx context.Context, key, contentType string, r io.Reader) error {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing object %s: %w", key, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing object %s: %w", key, err)
	}

	return nil
}

func (g *GCSStore) Remove(ctx context.Context, key string) error {
	if err := g.bucket.Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}

	return nil
}
