package http

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"io"

	"github.com/charmbracelet/log"
	"github.com/darkonteams/tourneybot/internal/inngest"
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/pubsub"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear store")
		if err := s.Store.Clear(); err != nil {
			log.Error("Failed to clear store", "error", err)
			http.Error(w, "Failed to clear store", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) CheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting poll cycle...")
		isDryRun := isDryRunFromContext(r)

		if err := s.Poller.CheckAndJoin(isDryRun); err != nil {
			log.Error("Poll cycle failed", "error", err)
			http.Error(w, "Poll cycle failed", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Poll cycle completed.")
		log.Info("Poll cycle finished.")
	}
}

func (s *Server) IngestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournamentID")
		if tournamentID == "" {
			http.Error(w, "tournamentID is required", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		log.Info("Received manual ingest request", "tournamentID", tournamentID)

		if err := s.Poller.IngestResults(tournamentID, isDryRun); err != nil {
			log.Error("Failed to ingest results", "error", err, "tournamentID", tournamentID)
			http.Error(w, "Failed to ingest results", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Ingested results for tournament %s.", tournamentID)
	}
}

func (s *Server) MarkerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		marker, err := s.Store.LoadMarker()
		if err != nil {
			http.Error(w, "Failed to get marker", http.StatusInternalServerError)
			log.Error("Failed to get marker from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(marker); err != nil {
			log.Error("Failed to encode marker to JSON", "error", err)
		}
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetStats()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats from store", "error", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			log.Error("Failed to encode player stats to JSON", "error", err)
		}
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		if username == "" {
			http.Error(w, "username is required", http.StatusBadRequest)
			return
		}

		stats, err := s.Store.GetPlayerStats(username)
		if err != nil {
			log.Warn("Could not find player stats", "username", username, "error", err)
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			log.Error("Failed to encode player stats to JSON", "error", err)
		}
	}
}

func (s *Server) ExportStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetStats()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats from store", "error", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="tourney_stats.csv"`)

		writer := csv.NewWriter(w)
		writer.Write([]string{"username", "score", "games", "num_tournaments", "tournament_wins", "wins", "losses", "draws"})
		for _, ps := range stats {
			writer.Write([]string{
				ps.Username,
				strconv.Itoa(ps.Score),
				strconv.Itoa(ps.Games),
				strconv.Itoa(ps.NumTournaments),
				strconv.Itoa(ps.TournamentWins),
				strconv.Itoa(ps.Wins),
				strconv.Itoa(ps.Losses),
				strconv.Itoa(ps.Draws),
			})
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			log.Error("Failed to write CSV export", "error", err)
		}
	}
}

func (s *Server) NotifyJoinedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify joined message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.JoinedEvent{}
		s.pubsub.ProcessMessage(rawData, &event)
		tournament := lichess.Tournament{
			ID:         event.TournamentID,
			Name:       event.Name,
			StartsAt:   time.UnixMilli(event.StartsAt).UTC(),
			FinishesAt: time.UnixMilli(event.FinishesAt).UTC(),
		}
		if err := s.Notifier.SendJoinNotification(&tournament, isDryRun); err != nil {
			log.Error("Failed to send join notification", "error", err, "tournamentID", tournament.ID)
			http.Error(w, "Failed to send join notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) NotifyResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify results message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.ResultsEvent{}
		s.pubsub.ProcessMessage(rawData, &event)
		// Standings are immutable once a tournament has finished, so they are
		// fetched again here rather than shipped through the message.
		results, err := s.LichessClient.GetResults(event.TournamentID)
		if err != nil {
			log.Error("Failed to fetch results", "error", err, "tournamentID", event.TournamentID)
			http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendResultsNotification(event.TournamentID, results, isDryRun); err != nil {
			log.Error("Failed to send results notification", "error", err, "tournamentID", event.TournamentID)
			http.Error(w, "Failed to send results notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetStats()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(stats)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)

		stats, err := s.Store.GetPlayerStats(playerName)
		var msg any
		if err != nil {
			log.Warn("Could not find player stats", "player", playerName, "error", err)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = s.Notifier.FormatPlayerStatsResponse(stats, playerName)
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

func (s *Server) SendInngestEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		data := map[string]any{"dryRun": isDryRun}
		s.InngestClient.SendEvent(inngest.EventPollRequested, data)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
