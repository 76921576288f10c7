package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ObjectStore is the three-operation surface the core depends on. Keys are
// "<bucket>/<path>" slots; PublicURL is stable for a given key.
//
//go:generate mockgen -source=object_store.go -destination=mock/object_store_mock.go -package=mock
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	Remove(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// httpObjectStore targets a Supabase-storage-style API:
// POST {base}/storage/v1/object/{bucket}/{key} to write,
// public reads at {base}/storage/v1/object/public/{bucket}/{key}.
type httpObjectStore struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

func NewHTTPObjectStore(baseURL, serviceKey string, logger ...*zap.Logger) ObjectStore {
	l := zap.L().Named("storage.objectstore")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.objectstore")
	}
	return &httpObjectStore{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     l,
	}
}

func (s *httpObjectStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	// Allow replacing an object that already occupies the slot.
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("object store put returned %d: %s", resp.StatusCode, body)
	}

	return nil
}

func (s *httpObjectStore) Remove(ctx context.Context, bucket, key string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("object store remove returned %d: %s", resp.StatusCode, body)
	}

	return nil
}

func (s *httpObjectStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, key)
}
