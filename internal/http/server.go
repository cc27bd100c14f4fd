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

func NewServer(store tourney.TourneyStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, lichessClient lichess.LichessClient, notifier notifier.Notifier, poller *poller.Poller, pubsub pubsub.PubSubClient, inngestClient inngest.InngestClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		LichessClient:  lichessClient,
		Notifier:       notifier,
		Poller:         poller,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		InngestClient:  inngestClient,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/check", Chain(s.CheckHandler(), paramsMiddleware))
	s.Router.Handle("/ingest", Chain(s.IngestHandler(), paramsMiddleware))
	s.Router.Handle("/marker", Chain(s.MarkerHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("/stats/player", Chain(s.PlayerStatsHandler(), paramsMiddleware))
	s.Router.Handle("/stats/export", Chain(s.ExportStatsHandler(), paramsMiddleware))
	s.Router.Handle("/notify-joined", Chain(s.NotifyJoinedHandler(), paramsMiddleware))
	s.Router.Handle("/notify-results", Chain(s.NotifyResultsHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))
	s.Router.Handle("/slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))
	s.Router.Handle("/inngest/send", Chain(s.SendInngestEventHandler(), paramsMiddleware))
	s.Router.Handle("/api/inngest", s.InngestClient.Serve())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
