package tourney

// TourneyStore defines the interface for interacting with the tournament data.
type TourneyStore interface {
	LoadMarker() (Marker, error)
	SaveMarker(marker Marker) error
	UpsertStats(stats []*PlayerStats) error
	GetStats() ([]PlayerStats, error)
	GetPlayerStats(username string) (*PlayerStats, error)
	Clear() error
}
