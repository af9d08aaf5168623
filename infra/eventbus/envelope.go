package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirasaad/payouts/pkg/eventbus"
	"github.com/google/uuid"
)

type envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func buildEnvelope(event eventbus.Event, now time.Time) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("event bus: marshal failed: %w", err)
	}
	env := envelope{
		ID:         uuid.NewString(),
		Type:       event.Type(),
		OccurredAt: now.UTC(),
		Payload:    data,
	}
	envBytes, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("event bus: envelope marshal failed: %w", err)
	}
	return envBytes, nil
}

func keyFor(event eventbus.Event) []byte {
	if k, ok := event.(eventbus.Keyed); ok && k.Key() != "" {
		return []byte(k.Key())
	}
	return []byte(event.Type())
}
