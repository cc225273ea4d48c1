package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to environment variable overrides,
	// e.g. CLINIQUE_DATABASE_HOST overrides database.host.
	EnvPrefix = "CLINIQUE"
)
