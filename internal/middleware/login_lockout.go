package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/notification"
)

const (
	lockoutMaxAttempts  = 3
	lockoutDuration     = 5 * time.Minute
	lockoutCounterTTL   = time.Hour
	lockoutFailKeyTmpl  = "login:fail:%s"
	lockoutLockKeyTmpl  = "login:lock:%s"
	lockoutEmailKeyTmpl = "login:lockmail:%s"
)

// LockoutEmailLookup resolves the real account email for the lockout notice;
// the login identifier may be a username.
type LockoutEmailLookup interface {
	EmailForLogin(ctx context.Context, identifier string) (string, error)
}

// LoginLockout blocks a login identifier after repeated failures. Counters
// and locks live in Redis so the limit holds across instances.
type LoginLockout struct {
	rdb        *redis.Client
	dispatcher *notification.Dispatcher
	emails     LockoutEmailLookup
	logger     *zap.Logger
}

func NewLoginLockout(rdb *redis.Client, dispatcher *notification.Dispatcher, emails LockoutEmailLookup, logger ...*zap.Logger) *LoginLockout {
	l := zap.L().Named("middleware.lockout")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.lockout")
	}
	return &LoginLockout{rdb: rdb, dispatcher: dispatcher, emails: emails, logger: l}
}

func (m *LoginLockout) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		identifier := m.extractIdentifier(c)
		if identifier != "" {
			if retryAfter, locked := m.isLocked(c.Request.Context(), identifier); locked {
				minutes := int(retryAfter.Minutes())
				if minutes < 1 {
					minutes = 1
				}
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"detail": fmt.Sprintf(
						"Cuenta temporalmente bloqueada. Demasiados intentos fallidos. Intenta nuevamente en %d minutos.",
						minutes,
					),
					"remaining_minutes": minutes,
				})
				return
			}
		}

		c.Next()

		if identifier == "" {
			return
		}

		switch {
		case c.Writer.Status() == http.StatusOK:
			m.clear(c.Request.Context(), identifier)
		case c.Writer.Status() == http.StatusBadRequest,
			c.Writer.Status() == http.StatusUnauthorized,
			c.Writer.Status() == http.StatusForbidden:
			m.recordFailure(c.Request.Context(), identifier)
		}
	}
}

// extractIdentifier reads username/email from the JSON body, restoring the
// body so the login handler can bind it afterwards.
func (m *LoginLockout) extractIdentifier(c *gin.Context) string {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Username != "" {
		return payload.Username
	}
	return payload.Email
}

func (m *LoginLockout) isLocked(ctx context.Context, identifier string) (time.Duration, bool) {
	ttl, err := m.rdb.TTL(ctx, fmt.Sprintf(lockoutLockKeyTmpl, identifier)).Result()
	if err != nil || ttl <= 0 {
		return 0, false
	}
	return ttl, true
}

func (m *LoginLockout) recordFailure(ctx context.Context, identifier string) {
	failKey := fmt.Sprintf(lockoutFailKeyTmpl, identifier)

	count, err := m.rdb.Incr(ctx, failKey).Result()
	if err != nil {
		m.logger.Warn("lockout counter update failed", zap.Error(err))
		return
	}
	m.rdb.Expire(ctx, failKey, lockoutCounterTTL)

	if count < lockoutMaxAttempts {
		return
	}

	lockKey := fmt.Sprintf(lockoutLockKeyTmpl, identifier)
	if err := m.rdb.Set(ctx, lockKey, strconv.FormatInt(count, 10), lockoutDuration).Err(); err != nil {
		m.logger.Warn("lockout set failed", zap.Error(err))
		return
	}
	m.rdb.Del(ctx, failKey)

	m.logger.Warn("login identifier locked",
		zap.String("identifier", identifier),
		zap.Duration("duration", lockoutDuration),
	)

	m.notifyLocked(ctx, identifier)
}

func (m *LoginLockout) clear(ctx context.Context, identifier string) {
	m.rdb.Del(ctx, fmt.Sprintf(lockoutFailKeyTmpl, identifier))
}

func (m *LoginLockout) notifyLocked(ctx context.Context, identifier string) {
	// One notice per lock window.
	mailKey := fmt.Sprintf(lockoutEmailKeyTmpl, identifier)
	isNew, err := m.rdb.SetNX(ctx, mailKey, "sent", lockoutDuration).Result()
	if err != nil || !isNew {
		return
	}

	email := identifier
	if m.emails != nil {
		if resolved, err := m.emails.EmailForLogin(ctx, identifier); err == nil && resolved != "" {
			email = resolved
		}
	}

	m.dispatcher.Enqueue(notification.Notification{
		Event:     notification.EventAccountLocked,
		Recipient: email,
		Context: notification.TemplateContext{
			ExtraInfo: strconv.Itoa(int(lockoutDuration.Minutes())),
		},
	})
}
