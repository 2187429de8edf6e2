package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PODIUM_CONFIG",
	"PODIUM_ADDR",
	"PODIUM_CSV_URL",
	"PODIUM_SHEET_TOKEN",
	"PODIUM_SHEET_ID",
	"PODIUM_SHEET_RANGE",
	"PODIUM_METRIC",
	"PODIUM_NAME_COLUMN",
	"PODIUM_SCORE_COLUMN",
	"PODIUM_POLL_INTERVAL_SECONDS",
	"PODIUM_MAX_LEADERBOARD_LIMIT",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Metric, convey.ShouldEqual, "sum")
				convey.So(cfg.PollIntervalSeconds, convey.ShouldEqual, 10)
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
				convey.So(cfg.PodiumSize, convey.ShouldEqual, 3)
				convey.So(cfg.HasCSVSource(), convey.ShouldBeFalse)
				convey.So(cfg.HasValuesSource(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PODIUM_ADDR", ":8080")
			_ = os.Setenv("PODIUM_CSV_URL", "https://sheets.example/export.csv")
			_ = os.Setenv("PODIUM_METRIC", "average")
			_ = os.Setenv("PODIUM_POLL_INTERVAL_SECONDS", "30")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CSVURL, convey.ShouldEqual, "https://sheets.example/export.csv")
				convey.So(cfg.Metric, convey.ShouldEqual, "average")
				convey.So(cfg.PollIntervalSeconds, convey.ShouldEqual, 30)
				convey.So(cfg.HasCSVSource(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
addr: ":9090"
sheet_token: "key-123"
sheet_id: "sheet-1"
sheet_range: "Scores!A:C"
name_column: "presenter"
score_column: "points"
metric: "average"
`
			tmpFile := filepath.Join(t.TempDir(), "podium.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("PODIUM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.NameColumn, convey.ShouldEqual, "presenter")
				convey.So(cfg.ScoreColumn, convey.ShouldEqual, "points")
				convey.So(cfg.HasValuesSource(), convey.ShouldBeTrue)
			})

			convey.Convey("And env vars still override the file", func() {
				_ = os.Setenv("PODIUM_ADDR", ":7070")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the configured metric is unknown", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PODIUM_METRIC", "median")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the CSV URL is not a URL", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PODIUM_CSV_URL", "not-a-url")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PODIUM_CONFIG", "/nonexistent/podium.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the load kind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}
