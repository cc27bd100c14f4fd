package inngest

import (
	"github.com/darkonteams/tourneybot/internal/poller"
	"github.com/inngest/inngestgo"
)

// EventPollRequested triggers an immediate poll cycle outside the cron
// schedule.
const EventPollRequested = "tourney/poll.requested"

type client struct {
	inngestClient inngestgo.Client
	poller        *poller.Poller
}

// PollData is the payload for manually requested polls.
type PollData struct {
	DryRun bool `json:"dryRun"`
}
