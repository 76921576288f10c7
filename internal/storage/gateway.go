package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

// Buckets used by the platform.
const (
	BucketLogos  = "logos"
	BucketCVs    = "cvs"
	BucketPhotos = "fotos"
)

const (
	// MaxUploadSize caps attachments before any network attempt.
	MaxUploadSize = 5 * 1024 * 1024

	defaultMaxAttempts = 3
	defaultBaseBackoff = 500 * time.Millisecond
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var (
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Máx 5 MB",
		http.StatusBadRequest,
	)
	ErrUnsupportedImageType = apperror.New(
		apperror.CodeInvalidInput,
		"Solo JPG o PNG",
		http.StatusBadRequest,
	)
	ErrUploadExhausted = apperror.New(
		apperror.CodeServiceUnavailable,
		"No se pudo subir el archivo, intenta nuevamente",
		http.StatusServiceUnavailable,
	)
)

// Gateway uploads attachments with bounded exponential-backoff retry and
// deterministic, human-auditable paths.
type Gateway struct {
	store       ObjectStore
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(context.Context, time.Duration) error
	now         func() time.Time
	logger      *zap.Logger
}

func NewGateway(store ObjectStore, logger ...*zap.Logger) *Gateway {
	l := zap.L().Named("storage.gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.gateway")
	}
	return &Gateway{
		store:       store,
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
		sleep:       sleepCtx,
		now:         time.Now,
		logger:      l,
	}
}

// WithRetryPolicy overrides the attempt budget and base delay. Used by tests
// and by callers with tighter latency needs.
func (g *Gateway) WithRetryPolicy(maxAttempts int, baseBackoff time.Duration) *Gateway {
	g.maxAttempts = maxAttempts
	g.baseBackoff = baseBackoff
	return g
}

// WithSleep injects the backoff sleeper. Tests use this to observe delays
// without waiting for them.
func (g *Gateway) WithSleep(sleep func(context.Context, time.Duration) error) *Gateway {
	g.sleep = sleep
	return g
}

// Upload validates, derives the object key and uploads with retry. The key is
// "<ownerID>/<unix-ts>_<filename>" so a bucket listing reads chronologically
// per owner. Returns the stable public URL.
func (g *Gateway) Upload(ctx context.Context, bucket string, ownerID int64, filename string, data []byte, contentType string) (string, error) {
	if len(data) > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	if (bucket == BucketLogos || bucket == BucketPhotos) && !imageContentTypes[contentType] {
		return "", ErrUnsupportedImageType
	}

	key := fmt.Sprintf("%d/%d_%s", ownerID, g.now().Unix(), sanitizeFilename(filename))

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		lastErr = g.store.Put(ctx, bucket, key, data, contentType)
		if lastErr == nil {
			return g.store.PublicURL(bucket, key), nil
		}

		g.logger.Warn("upload attempt failed",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.maxAttempts),
			zap.Error(lastErr),
		)

		if attempt == g.maxAttempts {
			break
		}
		// base, 2*base, 4*base, ...
		delay := g.baseBackoff << (attempt - 1)
		if err := g.sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", apperror.Wrap(lastErr, ErrUploadExhausted.Code, ErrUploadExhausted.Message, ErrUploadExhausted.HTTPStatus)
}

// Replace removes the object referenced by oldPublicURL (if any) before
// uploading the new content. Removal failure is tolerated: the old object may
// be orphaned, which is acceptable.
func (g *Gateway) Replace(ctx context.Context, bucket string, ownerID int64, oldPublicURL, filename string, data []byte, contentType string) (string, error) {
	if oldKey, ok := KeyFromPublicURL(oldPublicURL, bucket); ok {
		if err := g.store.Remove(ctx, bucket, oldKey); err != nil {
			g.logger.Warn("previous object removal failed, leaving orphan",
				zap.String("bucket", bucket),
				zap.String("key", oldKey),
				zap.Error(err),
			)
		}
	}

	return g.Upload(ctx, bucket, ownerID, filename, data, contentType)
}

// Remove deletes an object previously uploaded through the gateway.
func (g *Gateway) Remove(ctx context.Context, bucket, key string) error {
	return g.store.Remove(ctx, bucket, key)
}

// KeyFromPublicURL recovers the storage key from a public URL previously
// returned by the gateway.
func KeyFromPublicURL(publicURL, bucket string) (string, bool) {
	if publicURL == "" {
		return "", false
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}
	marker := "/storage/v1/object/public/" + bucket + "/"
	i := strings.Index(u.Path, marker)
	if i == -1 {
		return "", false
	}
	return u.Path[i+len(marker):], true
}

func sanitizeFilename(name string) string {
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
