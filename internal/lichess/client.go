package lichess

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// maxResults caps how many standings a single results fetch asks for.
const maxResults = 1000

// APIClient is a Lichess API client that implements the LichessClient interface.
type APIClient struct {
	httpClient *http.Client
	token      string
	BaseURL    string
}

// NewClient creates a new Lichess client authenticated with the given token.
func NewClient(token string) LichessClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
		BaseURL:    "https://lichess.org",
	}
}

// Ensure APIClient implements the LichessClient interface.
var _ LichessClient = (*APIClient)(nil)

// GetCreatedTournaments fetches the arena tournaments created by the given
// user, filtered to the provided statuses. The endpoint streams NDJSON, one
// tournament per line.
func (c *APIClient) GetCreatedTournaments(creator string, statuses ...TournamentStatus) ([]Tournament, error) {
	endpoint := fmt.Sprintf("%s/api/user/%s/tournament/created", c.BaseURL, creator)
	query := url.Values{}
	for _, status := range statuses {
		query.Add("status", strconv.Itoa(int(status)))
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	log.Debug("Fetching created tournaments from Lichess API", "url", endpoint)
	body, err := c.stream(endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var tournaments []Tournament
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var wire lichessTournamentResponse
		if err := json.Unmarshal(line, &wire); err != nil {
			return nil, fmt.Errorf("failed to decode tournament line: %w", err)
		}
		tournaments = append(tournaments, Tournament{
			ID:         wire.ID,
			Name:       wire.FullName,
			CreatedBy:  wire.CreatedBy,
			Status:     TournamentStatus(wire.Status),
			StartsAt:   time.UnixMilli(wire.StartsAt).UTC(),
			FinishesAt: time.UnixMilli(wire.FinishesAt).UTC(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tournament stream: %w", err)
	}

	log.Info("Successfully fetched tournaments", "count", len(tournaments), "creator", creator)
	return tournaments, nil
}

// JoinTournament joins the authenticated user into the given arena
// tournament, asking for immediate pairing.
func (c *APIClient) JoinTournament(tournamentID string) error {
	endpoint := fmt.Sprintf("%s/api/tournament/%s/join", c.BaseURL, tournamentID)

	form := url.Values{}
	form.Set("pairMeAsap", "true")

	req, err := http.NewRequestWithContext(context.Background(), "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Debug("Joining tournament", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Lichess API", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	log.Info("Joined tournament", "tournamentID", tournamentID)
	return nil
}

// GetResults fetches the final standings of a tournament, including each
// player's score sheet. The endpoint streams NDJSON ordered by rank.
func (c *APIClient) GetResults(tournamentID string) ([]TournamentResult, error) {
	endpoint := fmt.Sprintf("%s/api/tournament/%s/results?nb=%d&sheet=true", c.BaseURL, tournamentID, maxResults)

	log.Debug("Fetching tournament results from Lichess API", "url", endpoint)
	body, err := c.stream(endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var results []TournamentResult
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var wire lichessResultResponse
		if err := json.Unmarshal(line, &wire); err != nil {
			return nil, fmt.Errorf("failed to decode result line: %w", err)
		}
		wins, losses, draws := tallySheet(wire.Sheet.Scores)
		results = append(results, TournamentResult{
			Rank:     wire.Rank,
			Username: wire.Username,
			Score:    wire.Score,
			Games:    len(wire.Sheet.Scores),
			Wins:     wins,
			Losses:   losses,
			Draws:    draws,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results stream: %w", err)
	}

	log.Info("Successfully fetched results", "count", len(results), "tournamentID", tournamentID)
	return results, nil
}

// stream issues an authenticated GET against an NDJSON endpoint and returns
// the response body for line-by-line consumption. The caller must close it.
func (c *APIClient) stream(endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(context.Background(), "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		log.Error("Received non-OK HTTP status from Lichess API", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// tallySheet tallies wins, losses and draws from an arena score sheet. Each
// character is the points earned in one game: 0 is a loss, 1 a draw, and
// anything higher a win.
func tallySheet(scores string) (wins, losses, draws int) {
	for _, r := range scores {
		switch r {
		case '0':
			losses++
		case '1':
			draws++
		default:
			wins++
		}
	}
	return wins, losses, draws
}
