package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/metrics"
	"github.com/darkonteams/tourneybot/internal/tourney"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendJoinNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	tournament := &lichess.Tournament{
		ID:         "t1",
		Name:       "Hourly Ultrabullet Arena",
		StartsAt:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		FinishesAt: time.Date(2025, 1, 1, 11, 30, 0, 0, time.UTC),
	}

	err := notifier.SendJoinNotification(tournament, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendJoinNotification")
}

func TestFormatJoinNotification(t *testing.T) {
	tournament := &lichess.Tournament{
		ID:         "t1",
		Name:       "Hourly Ultrabullet Arena",
		StartsAt:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		FinishesAt: time.Date(2025, 1, 1, 11, 30, 0, 0, time.UTC),
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatJoinNotification(tournament)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	// 1. Header Block
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "♟️ Joined a new tournament! ♟️", header.Text.Text)
	assert.True(t, *header.Text.Emoji)

	// 2. Details Section
	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	expectedDetails := "Tournament: Hourly Ultrabullet Arena\nStarts: Wednesday 01 Jan, 10:00 UTC\nFinishes: Wednesday 01 Jan, 11:30 UTC"
	assert.Equal(t, expectedDetails, details.Text.Text)

	// 3. Context Section
	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok, "Third block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)

	linkElement, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Watch live: https://lichess.org/tournament/t1", linkElement.Text)
}

func TestFormatResultsNotification(t *testing.T) {
	t.Run("shows podium for finished tournament", func(t *testing.T) {
		results := []lichess.TournamentResult{
			{Rank: 1, Username: "g1my", Score: 52, Games: 16, Wins: 14, Losses: 2, Draws: 0},
			{Rank: 2, Username: "chessfan", Score: 31, Games: 7, Wins: 3, Losses: 2, Draws: 2},
			{Rank: 3, Username: "blitzer", Score: 28, Games: 9, Wins: 5, Losses: 4, Draws: 0},
			{Rank: 4, Username: "straggler", Score: 2, Games: 2, Wins: 0, Losses: 2, Draws: 0},
		}

		client := &Notifier{channelID: "C123"}
		msg := client.formatResultsNotification("t1", results)

		require.Len(t, msg.Blocks.BlockSet, 5, "Expected 5 blocks (header + 3 podium + context)")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "♟️ Tournament finished! ♟️", header.Text.Text)

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, first.Text.Text, "1. 🥇 g1my")
		assert.Contains(t, first.Text.Text, "> Score: 52 | Games: 16 | 14W / 2L / 0D")

		second, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, second.Text.Text, "2. 🥈 chessfan")

		third, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, third.Text.Text, "3. 🥉 blitzer")

		contextBlock, ok := msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
		require.True(t, ok)
		require.Len(t, contextBlock.ContextElements.Elements, 1)

		linkElement, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "Full standings: https://lichess.org/tournament/t1", linkElement.Text)
	})

	t.Run("shows message when nobody played", func(t *testing.T) {
		client := &Notifier{channelID: "C123"}
		msg := client.formatResultsNotification("t1", nil)

		require.Len(t, msg.Blocks.BlockSet, 2, "Expected 2 blocks (header + message)")

		message, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No players took part this time.", message.Text.Text)
	})
}

func TestFormatLeaderboard(t *testing.T) {
	t.Run("displays leaderboard with stats", func(t *testing.T) {
		stats := []tourney.PlayerStats{
			{Username: "g1my", Score: 152, Games: 60, NumTournaments: 4, TournamentWins: 3, Wins: 40, Losses: 15, Draws: 5},
			{Username: "chessfan", Score: 101, Games: 44, NumTournaments: 4, TournamentWins: 1, Wins: 22, Losses: 18, Draws: 4},
			{Username: "blitzer", Score: 77, Games: 31, NumTournaments: 3, TournamentWins: 0, Wins: 14, Losses: 15, Draws: 2},
		}

		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(stats)

		require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks (header + 3 players)")

		// Check header
		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Tournament Leaderboard 🏆", header.Text.Text)

		// Check first player
		player1, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player1.Text.Text, "1. 🥇 g1my")
		assert.Contains(t, player1.Text.Text, "> Score: 152 | Tournament Wins: 3 (4 played) | Games: 60")

		// Check second player
		player2, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player2.Text.Text, "2. 🥈 chessfan")

		// Check third player
		player3, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player3.Text.Text, "3. 🥉 blitzer")
	})

	t.Run("displays message when no stats are available", func(t *testing.T) {
		stats := []tourney.PlayerStats{}

		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(stats)

		require.Len(t, msg.Blocks.BlockSet, 2, "Expected 2 blocks (header + message)")

		// Check message
		message, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No stats available yet. Go play some tournaments!", message.Text.Text)
	})
}

func TestFormatPlayerStats(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("formats stats for a found player", func(t *testing.T) {
		stat := &tourney.PlayerStats{
			Username:       "g1my",
			Score:          152,
			Games:          60,
			NumTournaments: 4,
			TournamentWins: 3,
			Wins:           40,
			Losses:         15,
			Draws:          5,
		}

		msg := client.formatPlayerStats(stat, "g1my")
		require.Len(t, msg.Blocks.BlockSet, 2)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Stats for g1my 🏆", header.Text.Text)

		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "> *Score*: 152")
		assert.Contains(t, section.Text.Text, "> *Tournaments*: 4 (3 won)")
		assert.Contains(t, section.Text.Text, "> *Record*: 40W / 15L / 5D in 60 games")
	})

	t.Run("formats message for a player not found", func(t *testing.T) {
		msg := client.formatPlayerNotFound("Unknown Player")
		require.Len(t, msg.Blocks.BlockSet, 1)

		section, ok := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Sorry, I couldn't find a player matching *Unknown Player*. Try a different name.", section.Text.Text)
	})
}
