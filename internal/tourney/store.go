package tourney

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new TourneyStore.
func New(db *sql.DB) TourneyStore {
	return &store{
		db: db,
	}
}

// placeholderID is the id the singleton marker row is seeded with before any
// real tournament has been adopted.
const placeholderID = "abc"

// LoadMarker reads the singleton marker row. An empty finishes_at column maps
// to a zero FinishesAt.
func (s *store) LoadMarker() (Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id, finishesAt string
	err := s.db.QueryRow("SELECT id, finishes_at FROM latest_tourney LIMIT 1").Scan(&id, &finishesAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Warn("No marker row found, treating as first run")
			return Marker{}, nil
		}
		return Marker{}, fmt.Errorf("failed to load marker: %w", err)
	}

	marker := Marker{ID: id}
	if finishesAt != "" {
		t, err := time.Parse(time.RFC3339, finishesAt)
		if err != nil {
			return Marker{}, fmt.Errorf("failed to parse marker finish time %q: %w", finishesAt, err)
		}
		marker.FinishesAt = t
	}
	return marker, nil
}

// SaveMarker replaces the singleton marker row. A zero FinishesAt is stored
// as an empty string since the column is NOT NULL.
func (s *store) SaveMarker(marker Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	finishesAt := ""
	if !marker.FinishesAt.IsZero() {
		finishesAt = marker.FinishesAt.UTC().Format(time.RFC3339)
	}

	// The table holds exactly one row, so the update needs no WHERE clause.
	res, err := s.db.Exec("UPDATE latest_tourney SET id = ?, finishes_at = ?", marker.ID, finishesAt)
	if err != nil {
		return fmt.Errorf("failed to save marker: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save marker: %w", err)
	}
	if affected == 0 {
		if _, err := s.db.Exec("INSERT INTO latest_tourney (id, finishes_at) VALUES (?, ?)", marker.ID, finishesAt); err != nil {
			return fmt.Errorf("failed to insert marker: %w", err)
		}
	}
	log.Info("Saved marker", "id", marker.ID, "finishesAt", finishesAt)
	return nil
}

// UpsertStats folds the given deltas into the stats table. Rows are created
// on first appearance of a username and only ever incremented.
func (s *store) UpsertStats(stats []*PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tourney_stats (username, score, games, num_tournaments, tournament_wins, wins, losses, draws)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			score = score + excluded.score,
			games = games + excluded.games,
			num_tournaments = num_tournaments + excluded.num_tournaments,
			tournament_wins = tournament_wins + excluded.tournament_wins,
			wins = wins + excluded.wins,
			losses = losses + excluded.losses,
			draws = draws + excluded.draws;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, stat := range stats {
		_, err := stmt.Exec(stat.Username, stat.Score, stat.Games, stat.NumTournaments, stat.TournamentWins, stat.Wins, stat.Losses, stat.Draws)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert stats for %s: %w", stat.Username, err)
		}
	}

	return tx.Commit()
}

// GetStats returns the full leaderboard, best score first.
func (s *store) GetStats() ([]PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT username, score, games, num_tournaments, tournament_wins, wins, losses, draws
		FROM tourney_stats
		ORDER BY score DESC, tournament_wins DESC, games DESC, username ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var stat PlayerStats
		err := rows.Scan(
			&stat.Username,
			&stat.Score,
			&stat.Games,
			&stat.NumTournaments,
			&stat.TournamentWins,
			&stat.Wins,
			&stat.Losses,
			&stat.Draws,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// GetPlayerStats retrieves the statistics for a single player. The lookup is
// a case-insensitive fuzzy match (e.g. "g1m" will match "g1my").
func (s *store) GetPlayerStats(username string) (*PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT username, score, games, num_tournaments, tournament_wins, wins, losses, draws
		FROM tourney_stats
		WHERE username LIKE ? COLLATE NOCASE
		LIMIT 1
	`

	var stat PlayerStats
	pattern := "%" + username + "%"

	row := s.db.QueryRow(query, pattern)
	err := row.Scan(
		&stat.Username,
		&stat.Score,
		&stat.Games,
		&stat.NumTournaments,
		&stat.TournamentWins,
		&stat.Wins,
		&stat.Losses,
		&stat.Draws,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("No stats found for player matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("player matching '%s' not found", username)
		}
		log.Error("Failed to query player stats", "error", err, "pattern", pattern)
		return nil, fmt.Errorf("database error: %w", err)
	}

	log.Debug("Found player stats", "player", stat.Username)
	return &stat, nil
}

// Clear wipes the stats table and resets the marker to its seeded state.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for clearing store: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM tourney_stats"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear tourney_stats table: %w", err)
	}

	if _, err := tx.Exec("UPDATE latest_tourney SET id = ?, finishes_at = ''", placeholderID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to reset marker: %w", err)
	}

	return tx.Commit()
}
