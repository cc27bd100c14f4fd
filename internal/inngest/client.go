package inngest

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/darkonteams/tourneybot/internal/poller"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New creates a new InngestClient and registers the poll functions.
func New(inngestClient inngestgo.Client, poller *poller.Poller) InngestClient {
	c := &client{
		inngestClient: inngestClient,
		poller:        poller,
	}
	c.createScheduledPollFunction()
	c.createRequestedPollFunction()
	return c
}

func (i *client) createScheduledPollFunction() inngestgo.ServableFunction {
	config := inngestgo.FunctionOpts{
		ID:   "tournament-poller",
		Name: "Join tournaments and ingest results",
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.CronTrigger("*/15 * * * *"),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			// Wrapping the cycle in a step makes Inngest retry it on failure,
			// which is how an unreachable API or a failed ingestion heals.
			_, err := step.Run(ctx, "check-and-join", func(ctx context.Context) (string, error) {
				if err := i.poller.CheckAndJoin(false); err != nil {
					return "", err
				}
				return "OK", nil
			})
			if err != nil {
				return nil, err
			}
			return "OK", nil
		},
	)
	if err != nil {
		log.Fatal("Failed to create function", "error", err)
	}
	return f
}

func (i *client) createRequestedPollFunction() inngestgo.ServableFunction {
	config := inngestgo.FunctionOpts{
		ID:   "tournament-poller-manual",
		Name: "Poll on request",
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.EventTrigger(EventPollRequested, nil),
		func(ctx context.Context, input inngestgo.Input[PollData]) (any, error) {
			dryRun := input.Event.Data.DryRun
			_, err := step.Run(ctx, "check-and-join", func(ctx context.Context) (string, error) {
				if err := i.poller.CheckAndJoin(dryRun); err != nil {
					return "", err
				}
				return "OK", nil
			})
			if err != nil {
				return nil, err
			}
			return "OK", nil
		},
	)
	if err != nil {
		log.Fatal("Failed to create function", "error", err)
	}
	return f
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}

func (i *client) SendEvent(name string, data map[string]any) {
	_, err := i.inngestClient.Send(context.Background(), inngestgo.Event{Name: name, Data: data})
	if err != nil {
		log.Error("Failed to send inngest event", "error", err, "event", name)
	}
}
