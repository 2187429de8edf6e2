// Package source defines the contract for fetching raw score records from
// a spreadsheet-backed upstream.
//
// Two implementations exist: a published CSV export and a key-authenticated
// spreadsheet-values API. Each fetch re-reads the whole sheet; there is no
// pagination or incremental read.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/tabular"
)

const defaultHTTPTimeout = 15 * time.Second

// Columns names the sheet headers that carry record fields. Name and Score
// are required; Count and Average are optional passthroughs.
type Columns struct {
	Name    string
	Score   string
	Count   string
	Average string
}

// Source fetches one fresh set of raw records from the upstream sheet.
type Source interface {
	// Fetch retrieves and header-maps the current sheet contents.
	// A sheet missing its required columns yields zero records with a nil
	// error; transport failures return a *TransportError.
	Fetch(ctx context.Context) ([]model.RawRecord, error)

	// Name identifies the source kind for logs and metrics.
	Name() string
}

// httpDoer is the subset of http.Client the sources need; tests substitute
// a stub without opening sockets.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// mapRows turns a parsed grid (header row first) into records. Sheets
// without both required columns are treated as "no data", not an error.
func mapRows(rows [][]string, cols Columns) []model.RawRecord {
	if len(rows) < 2 {
		return nil
	}
	header := tabular.NewHeader(rows[0])
	if _, ok := header.Index(cols.Name); !ok {
		return nil
	}
	if _, ok := header.Index(cols.Score); !ok {
		return nil
	}

	records := make([]model.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := model.RawRecord{
			SubjectName: header.Cell(row, cols.Name),
			RawScore:    header.Cell(row, cols.Score),
		}
		if cols.Count != "" {
			rec.RawCount = header.Cell(row, cols.Count)
		}
		if cols.Average != "" {
			rec.RawAverage = header.Cell(row, cols.Average)
		}
		records = append(records, rec)
	}
	return records
}
