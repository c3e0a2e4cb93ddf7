package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/config"
	"github.com/oksasatya/go-community-events/pkg/helpers"
	"github.com/oksasatya/go-community-events/pkg/mailer"
)

// deliverer is satisfied by *mailer.Mailgun.
type deliverer interface {
	Deliver(ctx context.Context, job mailer.EmailJob) error
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.WithError(err).Fatal("amqp consumer")
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			handle(ctx, logger, mg, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// handle acks delivered jobs, drops malformed ones and requeues send failures.
func handle(ctx context.Context, logger *logrus.Logger, d deliverer, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		logger.WithError(err).WithField("message_id", msg.MessageId).Warn("bad message, dropping")
		_ = msg.Nack(false, false)
		return
	}
	if err := job.Validate(); err != nil {
		logger.WithError(err).WithField("message_id", msg.MessageId).Warn("invalid job, dropping")
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := d.Deliver(c, job); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "subject": job.Subject}).Error("send failed, requeueing")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
	logger.WithFields(logrus.Fields{"to": job.To, "subject": job.Subject}).Debug("email sent")
}
