package tourney

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for tournament tracking.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Marker is the singleton record of the most recently adopted tournament.
// A zero FinishesAt means nothing is pending ingestion, so the next poll
// should look for new tournaments immediately. The seeded placeholder row
// ('abc', no finish time) reads the same way.
type Marker struct {
	ID         string    `json:"id"`
	FinishesAt time.Time `json:"finishes_at"`
}

// Pending reports whether a tracked tournament's results still have to be
// ingested.
func (m Marker) Pending() bool {
	return !m.FinishesAt.IsZero()
}

// Due reports whether the poller should look for new tournaments: the finish
// time is either absent or has elapsed.
func (m Marker) Due(now time.Time) bool {
	return m.FinishesAt.IsZero() || !m.FinishesAt.After(now)
}

// PlayerStats represents a player's cumulative tournament statistics. The
// same type doubles as the additive delta passed to UpsertStats.
type PlayerStats struct {
	Username       string `json:"username"`
	Score          int    `json:"score"`
	Games          int    `json:"games"`
	NumTournaments int    `json:"num_tournaments"`
	TournamentWins int    `json:"tournament_wins"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Draws          int    `json:"draws"`
}
