package poller

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/metrics"
	"github.com/darkonteams/tourneybot/internal/pubsub"
	"github.com/darkonteams/tourneybot/internal/tourney"
	"github.com/google/uuid"
)

// New creates a new Poller.
func New(store Store, client Client, pubsub pubsub.PubSubClient, metrics metrics.Metrics, creator string) *Poller {
	return &Poller{
		store:   store,
		client:  client,
		pubsub:  pubsub,
		metrics: metrics,
		creator: creator,
	}
}

// CheckAndJoin runs one poll cycle. The adopted tournament's finish time acts
// as a gate: while it lies in the future nothing happens, and once it has
// passed its results are ingested before any new tournaments are joined. A
// failed ingestion aborts the cycle so the next run retries it.
func (p *Poller) CheckAndJoin(dryRun bool) error {
	cycleID := uuid.NewString()
	start := time.Now()
	defer func() {
		p.metrics.ObservePollDuration(time.Since(start).Seconds())
	}()
	p.metrics.IncPollRuns()
	log.Info("Starting poll cycle", "cycleID", cycleID, "creator", p.creator)

	marker, err := p.store.LoadMarker()
	if err != nil {
		return fmt.Errorf("failed to load marker: %w", err)
	}

	if !marker.Due(time.Now()) {
		log.Info("Adopted tournament still running, nothing to do", "cycleID", cycleID, "tournamentID", marker.ID, "finishesAt", marker.FinishesAt)
		return nil
	}

	if marker.Pending() {
		log.Info("Adopted tournament has finished, ingesting results first", "cycleID", cycleID, "tournamentID", marker.ID)
		if err := p.IngestResults(marker.ID, dryRun); err != nil {
			return err
		}
	}

	tournaments, err := p.client.GetCreatedTournaments(p.creator, lichess.StatusCreated, lichess.StatusStarted)
	if err != nil {
		return fmt.Errorf("failed to fetch tournaments: %w", err)
	}

	if len(tournaments) == 0 {
		log.Info("No upcoming tournaments found", "cycleID", cycleID, "creator", p.creator)
		return nil
	}

	joined := 0
	for _, tournament := range tournaments {
		if dryRun {
			log.Info("[Dry Run] Would join tournament", "tournamentID", tournament.ID, "name", tournament.Name)
			continue
		}
		if err := p.client.JoinTournament(tournament.ID); err != nil {
			p.metrics.IncJoinFailures()
			log.Error("Failed to join tournament", "error", err, "cycleID", cycleID, "tournamentID", tournament.ID)
			continue
		}
		joined++
		p.metrics.IncTournamentsJoined()
		log.Info("Joined tournament", "cycleID", cycleID, "tournamentID", tournament.ID, "name", tournament.Name)
		p.pubsub.SendMessage(string(pubsub.EventNotifyJoined), pubsub.JoinedEvent{
			TournamentID: tournament.ID,
			Name:         tournament.Name,
			StartsAt:     tournament.StartsAt.UnixMilli(),
			FinishesAt:   tournament.FinishesAt.UnixMilli(),
		})
	}

	newMarker := nextMarker(tournaments)
	if dryRun {
		log.Info("[Dry Run] Would adopt tournament", "tournamentID", newMarker.ID, "finishesAt", newMarker.FinishesAt)
		return nil
	}
	if err := p.store.SaveMarker(newMarker); err != nil {
		return fmt.Errorf("failed to save marker: %w", err)
	}

	log.Info("Poll cycle finished", "cycleID", cycleID, "joined", joined, "adopted", newMarker.ID, "finishesAt", newMarker.FinishesAt)
	return nil
}

// IngestResults fetches the final standings of a tournament and folds them
// into the stored player stats. When the tournament is the one the marker
// points at, the marker's pending finish is cleared so the next cycle can
// adopt a new tournament.
func (p *Poller) IngestResults(tournamentID string, dryRun bool) error {
	log.Info("Ingesting tournament results", "tournamentID", tournamentID)

	results, err := p.client.GetResults(tournamentID)
	if err != nil {
		p.metrics.IncIngestFailures()
		return fmt.Errorf("failed to fetch results for tournament %s: %w", tournamentID, err)
	}

	stats := make([]*tourney.PlayerStats, 0, len(results))
	for _, result := range results {
		delta := &tourney.PlayerStats{
			Username:       result.Username,
			Score:          result.Score,
			Games:          result.Games,
			NumTournaments: 1,
			Wins:           result.Wins,
			Losses:         result.Losses,
			Draws:          result.Draws,
		}
		// The arena winner is the rank 1 finisher.
		if result.Rank == 1 {
			delta.TournamentWins = 1
		}
		stats = append(stats, delta)
	}

	if dryRun {
		log.Info("[Dry Run] Would ingest results", "tournamentID", tournamentID, "players", len(stats))
		return nil
	}

	if len(stats) > 0 {
		if err := p.store.UpsertStats(stats); err != nil {
			p.metrics.IncIngestFailures()
			return fmt.Errorf("failed to upsert stats for tournament %s: %w", tournamentID, err)
		}
	}

	marker, err := p.store.LoadMarker()
	if err != nil {
		p.metrics.IncIngestFailures()
		return fmt.Errorf("failed to load marker: %w", err)
	}
	if marker.ID == tournamentID && marker.Pending() {
		if err := p.store.SaveMarker(tourney.Marker{ID: tournamentID}); err != nil {
			p.metrics.IncIngestFailures()
			return fmt.Errorf("failed to clear marker for tournament %s: %w", tournamentID, err)
		}
	}

	p.metrics.IncResultsIngested()
	log.Info("Ingested tournament results", "tournamentID", tournamentID, "players", len(stats))

	p.pubsub.SendMessage(string(pubsub.EventNotifyResults), pubsub.ResultsEvent{
		TournamentID: tournamentID,
		Players:      len(stats),
	})
	return nil
}

// nextMarker picks the tournament whose finish comes soonest, breaking ties
// by ID so adoption is deterministic.
func nextMarker(tournaments []lichess.Tournament) tourney.Marker {
	next := tournaments[0]
	for _, t := range tournaments[1:] {
		if t.FinishesAt.Before(next.FinishesAt) || (t.FinishesAt.Equal(next.FinishesAt) && t.ID < next.ID) {
			next = t
		}
	}
	return tourney.Marker{ID: next.ID, FinishesAt: next.FinishesAt}
}
