// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) layering file and env on top.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// CSVURL points at a published CSV export of the score sheet.
	// When set, CSV mode takes precedence over the values API.
	CSVURL string `koanf:"csv_url" validate:"omitempty,url"`

	// SheetToken is the caller-supplied access key for the values API,
	// passed through verbatim.
	SheetToken string `koanf:"sheet_token"`

	// SheetID identifies the spreadsheet for the values API.
	SheetID string `koanf:"sheet_id"`

	// SheetRange is the cell range read on each poll, e.g. "Scores!A:C".
	SheetRange string `koanf:"sheet_range"`

	// NameColumn and ScoreColumn are the required sheet headers.
	NameColumn  string `koanf:"name_column" validate:"required"`
	ScoreColumn string `koanf:"score_column" validate:"required"`

	// CountColumn and AverageColumn are optional passthrough headers.
	CountColumn   string `koanf:"count_column"`
	AverageColumn string `koanf:"average_column"`

	// Metric selects the ordering scalar: sum or average.
	Metric string `koanf:"metric" validate:"oneof=sum average"`

	// PollIntervalSeconds sets the refresh cadence.
	PollIntervalSeconds int `koanf:"poll_interval_seconds" validate:"min=1"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit" validate:"min=1"`

	// PodiumSize sets the default top-N view size.
	PodiumSize int `koanf:"podium_size" validate:"min=1"`

	// PhotosFile optionally points at a YAML name->photo-URL mapping.
	PhotosFile string `koanf:"photos_file"`

	// RefreshPerMinute bounds manual refreshes and upstream request rate.
	RefreshPerMinute int `koanf:"refresh_per_minute" validate:"min=1"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		NameColumn:          "name",
		ScoreColumn:         "score",
		Metric:              "sum",
		PollIntervalSeconds: 10,
		MaxLeaderboardLimit: 100,
		PodiumSize:          3,
		RefreshPerMinute:    12,
	}
}
