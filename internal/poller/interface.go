package poller

import (
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/tourney"
)

// Store defines the database operations required by the poller.
type Store interface {
	LoadMarker() (tourney.Marker, error)
	SaveMarker(marker tourney.Marker) error
	UpsertStats(stats []*tourney.PlayerStats) error
}

// Client defines the tournament platform operations required by the poller.
type Client interface {
	GetCreatedTournaments(creator string, statuses ...lichess.TournamentStatus) ([]lichess.Tournament, error)
	JoinTournament(tournamentID string) error
	GetResults(tournamentID string) ([]lichess.TournamentResult, error)
}
