// Command kafka_smoketest publishes a payout event through the Kafka
// publisher and reads it back from the topic.
//
//	KAFKA_BROKERS=localhost:9092 go run ./scripts/kafka_smoketest
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	infra_eventbus "github.com/amirasaad/payouts/infra/eventbus"
	"github.com/amirasaad/payouts/pkg/config"
	payoutdomain "github.com/amirasaad/payouts/pkg/domain/payout"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/segmentio/kafka-go"
)

// RunSmokeTest emits one AddressSet event for a throwaway username and waits
// for its envelope on the configured topic.
func RunSmokeTest(ctx context.Context, logger *slog.Logger) error {
	var cfg config.Kafka
	if err := envconfig.Process("KAFKA", &cfg); err != nil {
		return err
	}
	if len(cfg.Brokers) == 0 {
		cfg.Brokers = []string{"localhost:9092"}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	publisher, err := infra_eventbus.NewWithKafka(cfg.Brokers, cfg.Topic, logger)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	username := "smoketest-" + uuid.NewString()[:8]
	event := payoutdomain.AddressSet{
		Username: username,
		Network:  "paypal",
		Address:  username + "@example.com",
	}
	if err := publisher.Emit(ctx, event); err != nil {
		logger.Error("Emit failed", "error", err)
		return err
	}
	logger.Info("Produced", "topic", cfg.Topic, "username", username)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     "payout-smoketest",
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer func() { _ = r.Close() }()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			logger.Error("Fetch failed", "topic", cfg.Topic, "error", err)
			return err
		}
		_ = r.CommitMessages(ctx, msg)
		if string(msg.Key) != username {
			continue
		}
		var env struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		if env.Type != payoutdomain.EventAddressSet {
			return fmt.Errorf("unexpected event type %q", env.Type)
		}
		logger.Info("Consumed", "topic", cfg.Topic, "value", string(msg.Value))
		return nil
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := RunSmokeTest(context.Background(), logger); err != nil {
		os.Exit(1)
	}
	logger.Info("Kafka smoke test passed")
}
