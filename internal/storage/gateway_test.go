package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedStore struct {
	failures int
	puts     int
	removed  []string
	objects  map[string][]byte
}

func (s *scriptedStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	s.puts++
	if s.puts <= s.failures {
		return errors.New("connection reset by peer")
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[bucket+"/"+key] = data
	return nil
}

func (s *scriptedStore) Remove(ctx context.Context, bucket, key string) error {
	s.removed = append(s.removed, bucket+"/"+key)
	delete(s.objects, bucket+"/"+key)
	return nil
}

func (s *scriptedStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://files.test/storage/v1/object/public/%s/%s", bucket, key)
}

func newTestGateway(store ObjectStore, delays *[]time.Duration) *Gateway {
	g := NewGateway(store, zap.NewNop()).WithRetryPolicy(3, 500*time.Millisecond)
	g.now = func() time.Time { return time.Unix(1700000000, 0) }
	if delays != nil {
		g = g.WithSleep(func(ctx context.Context, d time.Duration) error {
			*delays = append(*delays, d)
			return nil
		})
	}
	return g
}

func TestUpload_RetriesThenSucceeds(t *testing.T) {
	store := &scriptedStore{failures: 2}
	var delays []time.Duration
	g := newTestGateway(store, &delays)

	url, err := g.Upload(context.Background(), BucketCVs, 5, "cv laura.pdf", []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/storage/v1/object/public/cvs/5/1700000000_cv_laura.pdf", url)
	assert.Equal(t, 3, store.puts)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 1 * time.Second}, delays)
}

func TestUpload_ExhaustsAttempts(t *testing.T) {
	store := &scriptedStore{failures: 3}
	var delays []time.Duration
	g := newTestGateway(store, &delays)

	_, err := g.Upload(context.Background(), BucketCVs, 5, "cv.pdf", []byte("pdf"), "application/pdf")
	require.Error(t, err)
	assert.ErrorContains(t, err, ErrUploadExhausted.Message)
	assert.Equal(t, 3, store.puts)
	// No sleep after the final attempt.
	assert.Len(t, delays, 2)
}

func TestUpload_TooLarge(t *testing.T) {
	store := &scriptedStore{}
	g := newTestGateway(store, nil)

	_, err := g.Upload(context.Background(), BucketCVs, 5, "cv.pdf", make([]byte, MaxUploadSize+1), "application/pdf")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Zero(t, store.puts, "oversized payloads never reach the store")
}

func TestUpload_ImageBucketsRejectNonImages(t *testing.T) {
	store := &scriptedStore{}
	g := newTestGateway(store, nil)

	_, err := g.Upload(context.Background(), BucketLogos, 2, "logo.pdf", []byte("x"), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	// CVs are not images and pass through.
	_, err = g.Upload(context.Background(), BucketCVs, 2, "cv.pdf", []byte("x"), "application/pdf")
	assert.NoError(t, err)
}

func TestUpload_CanceledDuringBackoff(t *testing.T) {
	store := &scriptedStore{failures: 3}
	g := NewGateway(store, zap.NewNop()).
		WithRetryPolicy(3, 500*time.Millisecond).
		WithSleep(func(ctx context.Context, d time.Duration) error {
			return context.Canceled
		})

	_, err := g.Upload(context.Background(), BucketCVs, 5, "cv.pdf", []byte("pdf"), "application/pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, store.puts)
}

func TestReplace_RemovesPreviousObject(t *testing.T) {
	store := &scriptedStore{}
	g := newTestGateway(store, nil)

	oldURL, err := g.Upload(context.Background(), BucketLogos, 2, "old.png", []byte("v1"), "image/png")
	require.NoError(t, err)

	_, err = g.Replace(context.Background(), BucketLogos, 2, oldURL, "new.png", []byte("v2"), "image/png")
	require.NoError(t, err)
	require.Len(t, store.removed, 1)
	assert.Equal(t, "logos/2/1700000000_old.png", store.removed[0])
}

func TestReplace_NoPreviousURL(t *testing.T) {
	store := &scriptedStore{}
	g := newTestGateway(store, nil)

	_, err := g.Replace(context.Background(), BucketLogos, 2, "", "logo.png", []byte("v1"), "image/png")
	require.NoError(t, err)
	assert.Empty(t, store.removed)
}

func TestKeyFromPublicURL(t *testing.T) {
	key, ok := KeyFromPublicURL("https://files.test/storage/v1/object/public/logos/2/1_logo.png", "logos")
	require.True(t, ok)
	assert.Equal(t, "2/1_logo.png", key)

	_, ok = KeyFromPublicURL("https://files.test/storage/v1/object/public/cvs/2/1_cv.pdf", "logos")
	assert.False(t, ok, "bucket mismatch")

	_, ok = KeyFromPublicURL("", "logos")
	assert.False(t, ok)

	_, ok = KeyFromPublicURL("://bad-url", "logos")
	assert.False(t, ok)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "cv_laura.pdf", sanitizeFilename("cv laura.pdf"))
	assert.Equal(t, "cv.pdf", sanitizeFilename("../../etc/cv.pdf"))
}
