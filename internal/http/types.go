package http

import (
	"net/http"

	"github.com/darkonteams/tourneybot/internal/config"
	"github.com/darkonteams/tourneybot/internal/inngest"
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/metrics"
	"github.com/darkonteams/tourneybot/internal/notifier"
	"github.com/darkonteams/tourneybot/internal/poller"
	"github.com/darkonteams/tourneybot/internal/pubsub"
	"github.com/darkonteams/tourneybot/internal/tourney"
)

type Server struct {
	Store          tourney.TourneyStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	LichessClient  lichess.LichessClient
	Notifier       notifier.Notifier
	Poller         *poller.Poller
	InngestClient  inngest.InngestClient
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
