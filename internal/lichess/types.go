package lichess

import "time"

// TournamentStatus identifies the lifecycle stage of an arena tournament.
type TournamentStatus int

const (
	StatusCreated  TournamentStatus = 10
	StatusStarted  TournamentStatus = 20
	StatusFinished TournamentStatus = 30
)

// Tournament represents an arena tournament.
type Tournament struct {
	ID         string
	Name       string
	CreatedBy  string
	Status     TournamentStatus
	StartsAt   time.Time
	FinishesAt time.Time
}

// TournamentResult is a single player's final standing in a tournament.
type TournamentResult struct {
	Rank     int
	Username string
	Score    int
	Games    int
	Wins     int
	Losses   int
	Draws    int
}

// lichessTournamentResponse defines the structure of one line in the NDJSON
// stream returned by the tournament listing endpoints. Timestamps are epoch
// milliseconds.
type lichessTournamentResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	CreatedBy  string `json:"createdBy"`
	Status     int    `json:"status"`
	StartsAt   int64  `json:"startsAt"`
	FinishesAt int64  `json:"finishesAt"`
}

// lichessResultResponse defines the structure of one line in the NDJSON
// stream returned by the tournament results endpoint.
type lichessResultResponse struct {
	Rank     int          `json:"rank"`
	Score    int          `json:"score"`
	Username string       `json:"username"`
	Sheet    lichessSheet `json:"sheet"`
}

// lichessSheet holds a player's per-game points as a string of digits,
// one character per game played.
type lichessSheet struct {
	Scores string `json:"scores"`
}
