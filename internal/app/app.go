package app

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/notification"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/connection"
	"github.com/juandiego305/Gestion-candidatos/internal/storage"
)

// App holds the long-lived pieces the API process must release on shutdown.
type App struct {
	dispatcher *notification.Dispatcher
}

// Close drains the notification queue before the process exits.
func (a *App) Close() {
	a.dispatcher.Close()
}

func BuildApp(router *gin.Engine) (*App, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return nil, err
	}

	identityStore := identity.NewHTTPStore(identity.StoreConfig{
		BaseURL:    os.Getenv("IDENTITY_STORE_URL"),
		ServiceKey: os.Getenv("IDENTITY_STORE_KEY"),
	})

	objectStore := storage.NewHTTPObjectStore(
		os.Getenv("OBJECT_STORE_URL"),
		os.Getenv("OBJECT_STORE_KEY"),
	)

	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	})
	dispatcher := notification.NewDispatcher(mailer, 256, 4)

	if err := registerModules(router, gormDB, redisClient, identityStore, objectStore, dispatcher); err != nil {
		return nil, err
	}

	return &App{dispatcher: dispatcher}, nil
}
