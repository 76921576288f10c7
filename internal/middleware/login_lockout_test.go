package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/notification"
)

type lockoutMail struct {
	to, subject string
}

type lockoutRecordingMailer struct {
	mu   sync.Mutex
	sent []lockoutMail
}

func (m *lockoutRecordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, lockoutMail{to: to, subject: subject})
	return nil
}

type fakeEmailLookup struct {
	emailForLoginFn func(ctx context.Context, identifier string) (string, error)
}

func (f *fakeEmailLookup) EmailForLogin(ctx context.Context, identifier string) (string, error) {
	return f.emailForLoginFn(ctx, identifier)
}

func performLogin(t *testing.T, lockout *LoginLockout, handlerStatus int) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", lockout.Handler(), func(c *gin.Context) {
		c.JSON(handlerStatus, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"laura","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLockout_FailureIncrementsCounter(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectTTL("login:lock:laura").SetVal(-2 * time.Nanosecond)
	mock.ExpectIncr("login:fail:laura").SetVal(1)
	mock.ExpectExpire("login:fail:laura", time.Hour).SetVal(true)

	lockout := NewLoginLockout(rdb, nil, nil, zap.NewNop())
	w := performLogin(t, lockout, http.StatusUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockout_ThirdFailureLocksAndNotifies(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectTTL("login:lock:laura").SetVal(-2 * time.Nanosecond)
	mock.ExpectIncr("login:fail:laura").SetVal(3)
	mock.ExpectExpire("login:fail:laura", time.Hour).SetVal(true)
	mock.ExpectSet("login:lock:laura", "3", 5*time.Minute).SetVal("OK")
	mock.ExpectDel("login:fail:laura").SetVal(1)
	mock.ExpectSetNX("login:lockmail:laura", "sent", 5*time.Minute).SetVal(true)

	mailer := &lockoutRecordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, 16, 1, zap.NewNop())
	emails := &fakeEmailLookup{
		emailForLoginFn: func(ctx context.Context, identifier string) (string, error) {
			assert.Equal(t, "laura", identifier)
			return "laura@mail.test", nil
		},
	}

	lockout := NewLoginLockout(rdb, dispatcher, emails, zap.NewNop())
	performLogin(t, lockout, http.StatusUnauthorized)
	dispatcher.Close()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "laura@mail.test", mailer.sent[0].to)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockout_NoticeSentOncePerWindow(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectTTL("login:lock:laura").SetVal(-2 * time.Nanosecond)
	mock.ExpectIncr("login:fail:laura").SetVal(4)
	mock.ExpectExpire("login:fail:laura", time.Hour).SetVal(true)
	mock.ExpectSet("login:lock:laura", "4", 5*time.Minute).SetVal("OK")
	mock.ExpectDel("login:fail:laura").SetVal(1)
	// The dedupe key already exists: no mail.
	mock.ExpectSetNX("login:lockmail:laura", "sent", 5*time.Minute).SetVal(false)

	mailer := &lockoutRecordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, 16, 1, zap.NewNop())

	lockout := NewLoginLockout(rdb, dispatcher, nil, zap.NewNop())
	performLogin(t, lockout, http.StatusUnauthorized)
	dispatcher.Close()

	assert.Empty(t, mailer.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockout_BlocksWhileLocked(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectTTL("login:lock:laura").SetVal(4 * time.Minute)

	handlerHit := false
	gin.SetMode(gin.TestMode)
	router := gin.New()
	lockout := NewLoginLockout(rdb, nil, nil, zap.NewNop())
	router.POST("/login", lockout.Handler(), func(c *gin.Context) {
		handlerHit = true
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"laura","password":"x"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerHit, "locked requests must not reach the login handler")
	assert.Contains(t, w.Body.String(), "Cuenta temporalmente bloqueada")
	assert.Contains(t, w.Body.String(), "remaining_minutes")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockout_SuccessClearsCounter(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectTTL("login:lock:laura").SetVal(-2 * time.Nanosecond)
	mock.ExpectDel("login:fail:laura").SetVal(1)

	lockout := NewLoginLockout(rdb, nil, nil, zap.NewNop())
	w := performLogin(t, lockout, http.StatusOK)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockout_BodyRestoredForHandler(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectTTL("login:lock:laura").SetVal(-2 * time.Nanosecond)
	mock.ExpectDel("login:fail:laura").SetVal(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	lockout := NewLoginLockout(rdb, nil, nil, zap.NewNop())

	var seenUsername string
	router.POST("/login", lockout.Handler(), func(c *gin.Context) {
		var payload struct {
			Username string `json:"username"`
		}
		require.NoError(t, c.ShouldBindJSON(&payload))
		seenUsername = payload.Username
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"laura","password":"x"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "laura", seenUsername)
}

func TestLockout_NonJSONBodyPassesThrough(t *testing.T) {
	rdb, _ := redismock.NewClientMock()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	lockout := NewLoginLockout(rdb, nil, nil, zap.NewNop())
	router.POST("/login", lockout.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("not json"))
	router.ServeHTTP(w, req)

	// No identifier, so nothing is counted.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
