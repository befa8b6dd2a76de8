package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/boxoffice/config"
	"github.com/Domenick1991/boxoffice/internal/bootstrap"
	"github.com/Domenick1991/boxoffice/internal/kafka"
	"github.com/Domenick1991/boxoffice/internal/receipt"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := bootstrap.NewLogger(cfg.Log)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("kafka.brokers is empty, nothing to consume")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic)
	defer consumer.Close()

	sender := receipt.NewSender(logger.With("component", "receipts"))

	logger.Info("worker started", "topic", cfg.Kafka.EventsTopic, "group_id", cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeEvent(msg)
		if err != nil {
			logger.Warn("decode event error", "offset", msg.Offset, "error", err)
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			logger.Warn("receipt not sent", "event_id", event.ID, "error", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
