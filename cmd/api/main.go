package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/juandiego305/Gestion-candidatos/internal/app"
	"github.com/juandiego305/Gestion-candidatos/internal/bootstrap"
	"github.com/juandiego305/Gestion-candidatos/internal/middleware"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ContextLogger(logger))
	r.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	application, err := app.BuildApp(r)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer application.Close()

	auditLogger := bootstrap.NewStdoutAuditLogger()
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
