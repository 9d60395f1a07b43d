package notification

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"SliceScope/internal/config"
	"SliceScope/internal/model"
)

// NATSNotifier implements the Notifier interface by publishing derived KPI
// events as JSON messages on a NATS subject.
type NATSNotifier struct {
	nc      *nats.Conn
	subject string
	log     zerolog.Logger
}

// NewNATSNotifier connects to the configured NATS server and returns a
// notifier publishing to its subject.
func NewNATSNotifier(cfg config.NATSConfig, log zerolog.Logger) (model.Notifier, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info().Str("url", cfg.URL).Str("subject", cfg.Subject).Msg("connected to NATS server")
	return &NATSNotifier{
		nc:      nc,
		subject: cfg.Subject,
		log:     log.With().Str("component", "notifier").Logger(),
	}, nil
}

// Notify serializes the event and publishes it to the configured subject.
func (n *NATSNotifier) Notify(event model.KPIEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal KPI event: %w", err)
	}
	if err := n.nc.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish KPI event: %w", err)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (n *NATSNotifier) Close() {
	if n.nc != nil {
		n.nc.Drain()
		n.log.Info().Msg("NATS connection drained and closed")
	}
}
