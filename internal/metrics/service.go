package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PollRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_poll_runs_total",
			Help: "The total number of times the tournament poller has run.",
		}),
		TournamentsJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_tournaments_joined_total",
			Help: "The total number of tournaments successfully joined.",
		}),
		JoinFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_join_failures_total",
			Help: "The total number of tournament join attempts that failed.",
		}),
		ResultsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_results_ingested_total",
			Help: "The total number of tournaments whose final results were ingested.",
		}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_ingest_failures_total",
			Help: "The total number of results ingestion attempts that failed.",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourney_poll_duration_seconds",
			Help:    "The duration of individual poll cycles.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tourney_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PollRuns,
		s.TournamentsJoined,
		s.JoinFailures,
		s.ResultsIngested,
		s.IngestFailures,
		s.PollDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPollRuns() {
	s.PollRuns.Inc()
}

func (s *Service) IncTournamentsJoined() {
	s.TournamentsJoined.Inc()
}

func (s *Service) IncJoinFailures() {
	s.JoinFailures.Inc()
}

func (s *Service) IncResultsIngested() {
	s.ResultsIngested.Inc()
}

func (s *Service) IncIngestFailures() {
	s.IngestFailures.Inc()
}

func (s *Service) ObservePollDuration(duration float64) {
	s.PollDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
