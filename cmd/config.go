package cmd

// Config carries everything the service needs at startup. Values come from
// the environment (see cmd/app/main.go); the seed margins are only applied
// when the corresponding system config rows do not exist yet.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// OrderNumberPrefix is prepended to the sequence-derived order number,
	// e.g. "FO" yields FO-000123.
	OrderNumberPrefix string

	// DraftRetentionDays controls how long an untouched draft survives
	// before the nightly sweep purges it.
	DraftRetentionDays int

	// ServiceActorID identifies the service itself in audit entries written
	// by background jobs.
	ServiceActorID string

	// Seed values for the margin defaults, in percent.
	DefaultMarginPercent         float64
	DefaultShippingMarginPercent float64
}
