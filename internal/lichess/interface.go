package lichess

// LichessClient defines the interface for interacting with the Lichess API.
// This allows for mock implementations to be used in tests.
type LichessClient interface {
	GetCreatedTournaments(creator string, statuses ...TournamentStatus) ([]Tournament, error)
	JoinTournament(tournamentID string) error
	GetResults(tournamentID string) ([]TournamentResult, error)
}
