package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Lichess   LichessConfig
	Slack     SlackConfig
	Turso     TursoConfig
	Inngest   InngestConfig
	ProjectID string
}

// LichessConfig identifies the account acting on the platform and the
// creator whose tournaments are tracked.
type LichessConfig struct {
	Token   string
	Creator string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// TursoConfig is optional; an empty PrimaryURL selects a local database file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type InngestConfig struct {
	AppID      string
	SigningKey string
	EventKey   string
	Dev        bool
}
