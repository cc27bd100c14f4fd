package tourney_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/darkonteams/tourneybot/internal/database"
	"github.com/darkonteams/tourneybot/internal/tourney"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (tourney.TourneyStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := tourney.New(db)
	teardown := func() {
		dbTeardown()
	}

	return store, db, teardown
}

func TestLoadMarker_Seeded(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	marker, err := store.LoadMarker()
	require.NoError(t, err)

	assert.Equal(t, "abc", marker.ID)
	assert.True(t, marker.FinishesAt.IsZero())
	assert.False(t, marker.Pending())
	assert.True(t, marker.Due(time.Now()))
}

func TestSaveMarker_Roundtrip(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	finish := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	err := store.SaveMarker(tourney.Marker{ID: "t1", FinishesAt: finish})
	require.NoError(t, err)

	marker, err := store.LoadMarker()
	require.NoError(t, err)
	assert.Equal(t, "t1", marker.ID)
	assert.True(t, marker.FinishesAt.Equal(finish))
	assert.True(t, marker.Pending())

	// The marker table must never grow beyond its single row.
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM latest_tourney").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var stored string
	err = db.QueryRow("SELECT finishes_at FROM latest_tourney").Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01T10:00:00Z", stored)
}

func TestSaveMarker_ZeroFinishStoredAsEmpty(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	err := store.SaveMarker(tourney.Marker{ID: "t2", FinishesAt: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	err = store.SaveMarker(tourney.Marker{ID: "t2"})
	require.NoError(t, err)

	var stored string
	err = db.QueryRow("SELECT finishes_at FROM latest_tourney").Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, "", stored)

	marker, err := store.LoadMarker()
	require.NoError(t, err)
	assert.Equal(t, "t2", marker.ID)
	assert.False(t, marker.Pending())
}

func TestSaveMarker_EmptyTable(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	// Even if the seed row disappears, saving must re-establish the singleton.
	_, err := db.Exec("DELETE FROM latest_tourney")
	require.NoError(t, err)

	finish := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	err = store.SaveMarker(tourney.Marker{ID: "t3", FinishesAt: finish})
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM latest_tourney").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	marker, err := store.LoadMarker()
	require.NoError(t, err)
	assert.Equal(t, "t3", marker.ID)
}

func TestUpsertStats_InsertsNewPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertStats([]*tourney.PlayerStats{
		{Username: "magnus", Score: 42, Games: 12, NumTournaments: 1, TournamentWins: 1, Wins: 10, Losses: 1, Draws: 1},
		{Username: "hikaru", Score: 38, Games: 12, NumTournaments: 1, Wins: 9, Losses: 2, Draws: 1},
	})
	require.NoError(t, err)

	stats, err := store.GetStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "magnus", stats[0].Username)
	assert.Equal(t, 42, stats[0].Score)
	assert.Equal(t, 1, stats[0].TournamentWins)
}

func TestUpsertStats_Additive(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertStats([]*tourney.PlayerStats{
		{Username: "magnus", Score: 42, Games: 12, NumTournaments: 1, TournamentWins: 1, Wins: 10, Losses: 1, Draws: 1},
	})
	require.NoError(t, err)

	// A second tournament's results accumulate on top of the first.
	err = store.UpsertStats([]*tourney.PlayerStats{
		{Username: "magnus", Score: 30, Games: 10, NumTournaments: 1, TournamentWins: 0, Wins: 7, Losses: 2, Draws: 1},
	})
	require.NoError(t, err)

	stats, err := store.GetPlayerStats("magnus")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 72, stats.Score)
	assert.Equal(t, 22, stats.Games)
	assert.Equal(t, 2, stats.NumTournaments)
	assert.Equal(t, 1, stats.TournamentWins)
	assert.Equal(t, 17, stats.Wins)
	assert.Equal(t, 3, stats.Losses)
	assert.Equal(t, 2, stats.Draws)
}

func TestGetStats_Ordering(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertStats([]*tourney.PlayerStats{
		{Username: "alice", Score: 20, NumTournaments: 1, TournamentWins: 0},
		{Username: "bob", Score: 50, NumTournaments: 1, TournamentWins: 1},
		{Username: "carol", Score: 20, NumTournaments: 1, TournamentWins: 1},
	})
	require.NoError(t, err)

	stats, err := store.GetStats()
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, "bob", stats[0].Username)
	assert.Equal(t, "carol", stats[1].Username)
	assert.Equal(t, "alice", stats[2].Username)
}

func TestGetPlayerStats(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertStats([]*tourney.PlayerStats{
		{Username: "DrNykterstein", Score: 60, Games: 15, NumTournaments: 1, TournamentWins: 1, Wins: 13, Losses: 1, Draws: 1},
	})
	require.NoError(t, err)

	t.Run("finds player by partial, case-insensitive match", func(t *testing.T) {
		stats, err := store.GetPlayerStats("nykterstein")
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, "DrNykterstein", stats.Username)
		assert.Equal(t, 60, stats.Score)
	})

	t.Run("returns error when player not found", func(t *testing.T) {
		stats, err := store.GetPlayerStats("nonexistent")
		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertStats([]*tourney.PlayerStats{
		{Username: "magnus", Score: 42, NumTournaments: 1},
	})
	require.NoError(t, err)
	err = store.SaveMarker(tourney.Marker{ID: "t9", FinishesAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	err = store.Clear()
	require.NoError(t, err)

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Len(t, stats, 0)

	marker, err := store.LoadMarker()
	require.NoError(t, err)
	assert.Equal(t, "abc", marker.ID)
	assert.False(t, marker.Pending())

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM latest_tourney").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
