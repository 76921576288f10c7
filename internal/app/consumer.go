package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/company"
	"github.com/juandiego305/Gestion-candidatos/internal/events"
	"github.com/juandiego305/Gestion-candidatos/internal/messaging/kafka/consumer"
	"github.com/juandiego305/Gestion-candidatos/internal/notification"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/connection"
	"github.com/juandiego305/Gestion-candidatos/internal/user"
	"github.com/juandiego305/Gestion-candidatos/internal/vacancy"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	})
	dispatcher := notification.NewDispatcher(mailer, 256, 4)
	defer dispatcher.Close()

	alerts := consumer.NewOwnerAlerts(
		vacancy.NewRepository(gormDB),
		company.NewRepository(gormDB),
		user.NewRepository(gormDB),
		dispatcher,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.ApplicationCreatedTopic,
		GroupID:        "gestion-candidatos-owner-alerts",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeApplicationLifecycle(ctx, reader, alerts, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
