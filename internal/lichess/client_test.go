package lichess

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatedTournaments(t *testing.T) {
	// Two NDJSON lines as streamed by the tournament listing endpoint.
	mockNDJSONResponse := `{"id":"t1","fullName":"Hourly Ultrabullet Arena","createdBy":"gbfgbfgbf","system":"arena","status":10,"startsAt":1735725600000,"finishesAt":1735731000000}
{"id":"t2","fullName":"Hourly Blitz Arena","createdBy":"gbfgbfgbf","system":"arena","status":20,"startsAt":1735812000000,"finishesAt":1735817400000}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/gbfgbfgbf/tournament/created", r.URL.Path)
		assert.Equal(t, []string{"10", "20"}, r.URL.Query()["status"])
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprintln(w, mockNDJSONResponse)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		token:      "test-token",
		BaseURL:    server.URL,
	}

	tournaments, err := client.GetCreatedTournaments("gbfgbfgbf", StatusCreated, StatusStarted)

	require.NoError(t, err)
	require.Len(t, tournaments, 2)
	assert.Equal(t, "t1", tournaments[0].ID)
	assert.Equal(t, "Hourly Ultrabullet Arena", tournaments[0].Name)
	assert.Equal(t, "gbfgbfgbf", tournaments[0].CreatedBy)
	assert.Equal(t, StatusCreated, tournaments[0].Status)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), tournaments[0].StartsAt)
	assert.Equal(t, time.Date(2025, 1, 1, 11, 30, 0, 0, time.UTC), tournaments[0].FinishesAt)
	assert.Equal(t, "t2", tournaments[1].ID)
	assert.Equal(t, StatusStarted, tournaments[1].Status)
}

func TestGetCreatedTournaments_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		token:      "test-token",
		BaseURL:    server.URL,
	}

	tournaments, err := client.GetCreatedTournaments("gbfgbfgbf", StatusCreated)
	require.NoError(t, err)
	assert.Empty(t, tournaments)
}

func TestGetCreatedTournaments_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		token:      "test-token",
		BaseURL:    server.URL,
	}

	tournaments, err := client.GetCreatedTournaments("gbfgbfgbf", StatusCreated)
	assert.Error(t, err)
	assert.Nil(t, tournaments)
}

func TestJoinTournament(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/tournament/t1/join", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "true", r.PostForm.Get("pairMeAsap"))

		fmt.Fprintln(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		token:      "test-token",
		BaseURL:    server.URL,
	}

	err := client.JoinTournament("t1")
	require.NoError(t, err)
}

func TestJoinTournament_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Already playing"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		token:      "test-token",
		BaseURL:    server.URL,
	}

	err := client.JoinTournament("t1")
	assert.Error(t, err)
}

func TestGetResults(t *testing.T) {
	mockNDJSONResponse := `{"rank":1,"score":52,"rating":1830,"username":"g1my","performance":2084,"sheet":{"scores":"5545432053205432"}}
{"rank":2,"score":31,"rating":1677,"username":"chessfan","performance":1844,"sheet":{"scores":"2201012"}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournament/t1/results", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("nb"))
		assert.Equal(t, "true", r.URL.Query().Get("sheet"))
		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprintln(w, mockNDJSONResponse)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		token:      "test-token",
		BaseURL:    server.URL,
	}

	results, err := client.GetResults("t1")

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, "g1my", results[0].Username)
	assert.Equal(t, 52, results[0].Score)
	assert.Equal(t, 16, results[0].Games)
	assert.Equal(t, 14, results[0].Wins)
	assert.Equal(t, 2, results[0].Losses)
	assert.Equal(t, 0, results[0].Draws)

	assert.Equal(t, 2, results[1].Rank)
	assert.Equal(t, "chessfan", results[1].Username)
	assert.Equal(t, 7, results[1].Games)
	assert.Equal(t, 3, results[1].Wins)
	assert.Equal(t, 2, results[1].Losses)
	assert.Equal(t, 2, results[1].Draws)
}

func TestTallySheet(t *testing.T) {
	t.Run("mixed sheet", func(t *testing.T) {
		wins, losses, draws := tallySheet("5210034")
		assert.Equal(t, 4, wins)
		assert.Equal(t, 2, losses)
		assert.Equal(t, 1, draws)
	})

	t.Run("empty sheet", func(t *testing.T) {
		wins, losses, draws := tallySheet("")
		assert.Equal(t, 0, wins)
		assert.Equal(t, 0, losses)
		assert.Equal(t, 0, draws)
	})
}
