package poller

import (
	"github.com/darkonteams/tourneybot/internal/metrics"
	"github.com/darkonteams/tourneybot/internal/pubsub"
)

// Poller drives the join-and-ingest cycle for the configured tournament creator.
type Poller struct {
	store   Store
	client  Client
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics
	creator string
}
