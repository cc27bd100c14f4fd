package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/metrics"
	"github.com/darkonteams/tourneybot/internal/notifier"
	"github.com/darkonteams/tourneybot/internal/tourney"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendJoinNotification(tournament *lichess.Tournament, dryRun bool) error {
	msg := s.formatJoinNotification(tournament)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendResultsNotification(tournamentID string, results []lichess.TournamentResult, dryRun bool) error {
	msg := s.formatResultsNotification(tournamentID, results)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(stats []tourney.PlayerStats) (any, error) {
	return s.formatLeaderboard(stats), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(stats *tourney.PlayerStats, query string) (any, error) {
	return s.formatPlayerStats(stats, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatJoinNotification creates the Slack message for a freshly joined tournament using Block Kit.
func (s *Notifier) formatJoinNotification(tournament *lichess.Tournament) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "♟️ Joined a new tournament! ♟️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details - Use newlines for clear separation.
	detailsText := fmt.Sprintf("Tournament: %s\nStarts: %s\nFinishes: %s",
		tournament.Name,
		tournament.StartsAt.UTC().Format("Monday 02 Jan, 15:04")+" UTC",
		tournament.FinishesAt.UTC().Format("Monday 02 Jan, 15:04")+" UTC",
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Context - link to the arena page.
	linkText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Watch live: https://lichess.org/tournament/%s", tournament.ID), false, false)
	blocks = append(blocks, slack.NewContextBlock("", linkText))

	return slack.NewBlockMessage(blocks...)
}

// formatResultsNotification creates the Slack message for a finished tournament using Block Kit.
func (s *Notifier) formatResultsNotification(tournamentID string, results []lichess.TournamentResult) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "♟️ Tournament finished! ♟️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(results) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players took part this time.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Podium - top three finishers.
	podium := results
	if len(podium) > 3 {
		podium = podium[:3]
	}
	for _, result := range podium {
		var medal string
		switch result.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		playerText := fmt.Sprintf("%d. %s %s\n> Score: %d | Games: %d | %dW / %dL / %dD",
			result.Rank,
			medal,
			result.Username,
			result.Score,
			result.Games,
			result.Wins,
			result.Losses,
			result.Draws,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	// Context - link to the full standings.
	linkText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Full standings: https://lichess.org/tournament/%s", tournamentID), false, false)
	blocks = append(blocks, slack.NewContextBlock("", linkText))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the all-time leaderboard.
func (s *Notifier) formatLeaderboard(stats []tourney.PlayerStats) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Tournament Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some tournaments!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, stat := range stats {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Score: %d | Tournament Wins: %d (%d played) | Games: %d",
			rank,
			medal,
			stat.Username,
			stat.Score,
			stat.TournamentWins,
			stat.NumTournaments,
			stat.Games,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(stat *tourney.PlayerStats, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", stat.Username)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Score*: %d\n> *Tournaments*: %d (%d won)\n> *Record*: %dW / %dL / %dD in %d games",
		stat.Score,
		stat.NumTournaments,
		stat.TournamentWins,
		stat.Wins,
		stat.Losses,
		stat.Draws,
		stat.Games,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
