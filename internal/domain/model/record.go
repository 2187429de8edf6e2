// Package model contains domain models passed between layers.
package model

import "time"

// RawRecord is one spreadsheet row of interest, extracted by header
// mapping before any numeric coercion. Records live for a single fetch
// cycle and are discarded after aggregation.
type RawRecord struct {
	SubjectName string // grouping key, trimmed by the aggregator
	RawScore    string // score cell as written, possibly decimal-comma
	RawCount    string // optional precomputed vote count, unused by SUM/AVERAGE
	RawAverage  string // optional precomputed average, informational only
}

// Snapshot is the fully aggregated, ranked result of one fetch cycle.
// Snapshots replace each other wholesale; entries are never mutated in
// place.
type Snapshot struct {
	Seq         uint64    // monotonic cycle sequence, used to discard stale completions
	CycleID     string    // correlation id for logs
	FetchedAt   time.Time // completion time of the fetch
	Entries     []Entry   // dense-ranked, descending by score
	DroppedRows int       // rows discarded during numeric coercion
}

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank    int     // dense competition rank, 1-based
	Name    string  // trimmed subject name, unique within a snapshot
	Score   float64 // ordering metric (sum or mean, config-selected)
	Display string  // formatted score: %.0f for sums, %.2f for averages
	Votes   int     // successfully parsed records in the group
}
