// Command podiumctl fetches the configured score sheet once and prints the
// ranked leaderboard to the terminal. It shares the service configuration
// (PODIUM_* env vars, optionally loaded from a .env file).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/okian/podium/internal/adapters/source"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/internal/domain/board"
)

const defaultFetchTimeout = 30 * time.Second

func main() {
	var (
		envFile = flag.String("env", "", "Path to a .env file with PODIUM_* variables")
		top     = flag.Int("top", 0, "Limit output to the top N subjects (0 = all)")
		timeout = flag.Duration("timeout", defaultFetchTimeout, "Fetch timeout")
	)
	flag.Parse()

	if err := run(*envFile, *top, *timeout); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(envFile string, top int, timeout time.Duration) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else {
		// Best-effort: a .env in the working directory is optional.
		_ = godotenv.Load()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	metric, err := board.ParseMetric(cfg.Metric)
	if err != nil {
		return err
	}

	src := buildSource(cfg)
	if src == nil {
		return source.ErrNoSource
	}

	records, err := src.Fetch(ctx)
	if err != nil {
		return err
	}

	entries, dropped := board.Aggregate(records, metric)
	if top > 0 && top < len(entries) {
		entries = entries[:top]
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Printf("Leaderboard (%s of %q, source: %s)\n", cfg.Metric, cfg.ScoreColumn, src.Name())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Name", "Score", "Votes"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, e := range entries {
		table.Append([]string{
			medal(e.Rank),
			e.Name,
			e.Display,
			humanize.Comma(int64(e.Votes)),
		})
	}
	table.Render()

	if dropped > 0 {
		color.Yellow("%d row(s) dropped during numeric coercion", dropped)
	}
	return nil
}

// medal renders the top three ranks with their podium medal.
func medal(rank int) string {
	switch rank {
	case 1:
		return color.YellowString("1 🥇")
	case 2:
		return color.WhiteString("2 🥈")
	case 3:
		return color.RedString("3 🥉")
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// buildSource mirrors the server's precedence: CSV first, then values API.
func buildSource(cfg *config.Config) source.Source {
	cols := source.Columns{
		Name:    cfg.NameColumn,
		Score:   cfg.ScoreColumn,
		Count:   cfg.CountColumn,
		Average: cfg.AverageColumn,
	}
	if cfg.HasCSVSource() {
		return source.NewCSVSource(cfg.CSVURL, cols)
	}
	if cfg.HasValuesSource() {
		return source.NewValuesSource(cfg.SheetToken, cfg.SheetID, cfg.SheetRange, cols)
	}
	return nil
}
