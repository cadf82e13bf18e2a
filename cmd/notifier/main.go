package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/internal/config"
	"nexta-backend-go/internal/core"
	"nexta-backend-go/internal/db"
	"nexta-backend-go/pkg/mailer"
	"nexta-backend-go/pkg/messagequeue"
)

// notifier consumes workflow events from RabbitMQ and emails the recipient.
func main() {
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	var zapLogger *zap.Logger
	if strings.EqualFold(appConfig.GinMode, "release") {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	if appConfig.RabbitMQURL == "" {
		zapLogger.Fatal("CRITICAL_ERROR: RABBITMQ_URL is required for the notifier")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initCtx, cancelInit := context.WithTimeout(ctx, 15*time.Second)
	defer cancelInit()
	clients, err := db.InitFirebase(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()

	store, err := db.NewStore(appConfig, clients, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize document store", zap.Error(err))
	}

	var m mailer.Mailer
	switch appConfig.MailProvider {
	case config.MailSendGrid:
		m = mailer.NewSendGridMailer(appConfig.SendGridAPIKey, appConfig.MailFrom, "Nexta")
	default:
		m = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     appConfig.SMTPHost,
			Port:     appConfig.SMTPPort,
			Username: appConfig.SMTPUsername,
			Password: appConfig.SMTPPassword,
			From:     appConfig.MailFrom,
		})
	}

	queue, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL}, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer queue.Close()

	notifier := core.NewNotifier(db.NewUserRepository(store), m, zapLogger)
	handler := func(ctx context.Context, body []byte) error {
		if err := notifier.Handle(ctx, body); err != nil {
			zapLogger.Error("Failed to deliver notification", zap.Error(err))
			return err
		}
		return nil
	}

	zapLogger.Info("Notifier consuming", zap.String("queue", appConfig.NotificationsQueue), zap.String("mailProvider", appConfig.MailProvider))
	if err := queue.Consume(ctx, appConfig.NotificationsQueue, handler); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Fatal("Consumer stopped", zap.Error(err))
	}
	zapLogger.Info("Notifier exiting gracefully.")
}
