// Package board turns raw score records into a dense-ranked leaderboard.
package board

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// Metric selects the scalar used to order subjects.
type Metric string

// Supported metrics.
const (
	MetricSum     Metric = "sum"
	MetricAverage Metric = "average"
)

// ParseMetric validates a configured metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricSum:
		return MetricSum, nil
	case MetricAverage:
		return MetricAverage, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// group accumulates one subject's contributions in insertion order.
type group struct {
	name  string
	total float64
	votes int
}

// Aggregate groups records by trimmed subject name, reduces each group to
// the chosen metric, and assigns dense competition ranks descending.
//
// Records with an empty name are dropped before grouping. A score that
// does not parse to a finite number (after decimal-comma normalization)
// drops its record silently; the second return value counts such drops
// for diagnostics. Ties share a rank and keep the stable grouping order;
// the next distinct score takes its 1-based position, so [10,10,7,7,7,3]
// ranks as [1,1,3,3,3,6].
func Aggregate(records []model.RawRecord, metric Metric) ([]model.Entry, int) {
	groups := make(map[string]*group, len(records))
	var order []*group
	dropped := 0

	for _, rec := range records {
		name := strings.TrimSpace(rec.SubjectName)
		if name == "" {
			continue
		}
		score, ok := parseScore(rec.RawScore)
		if !ok {
			dropped++
			continue
		}
		g, seen := groups[name]
		if !seen {
			g = &group{name: name}
			groups[name] = g
			order = append(order, g)
		}
		g.total += score
		g.votes++
	}

	entries := make([]model.Entry, 0, len(order))
	for _, g := range order {
		score := g.total
		display := strconv.FormatFloat(score, 'f', 0, 64)
		if metric == MetricAverage {
			score = g.total / math.Max(1, float64(g.votes))
			display = strconv.FormatFloat(score, 'f', 2, 64)
		}
		entries = append(entries, model.Entry{
			Name:    g.name,
			Score:   score,
			Display: display,
			Votes:   g.votes,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}

	return entries, dropped
}

// parseScore coerces a raw cell to a finite float64. A decimal comma is
// normalized to a decimal point; anything else non-numeric fails.
func parseScore(raw string) (float64, bool) {
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
