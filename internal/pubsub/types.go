package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventNotifyJoined  EventType = "notify-joined"
	EventNotifyResults EventType = "notify-results"
)

// JoinedEvent is the payload published when a tournament has been joined.
type JoinedEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	Name         string `msgpack:"name"`
	StartsAt     int64  `msgpack:"starts_at"`
	FinishesAt   int64  `msgpack:"finishes_at"`
}

// ResultsEvent is the payload published when a tournament's final standings
// have been ingested.
type ResultsEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	Players      int    `msgpack:"players"`
}
