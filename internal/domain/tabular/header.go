package tabular

import "strings"

// Header maps column names from a sheet's first row to cell indexes.
// Matching is case-insensitive and whitespace-trimmed; spreadsheet authors
// rarely keep header casing stable across copies of the same sheet.
type Header struct {
	index map[string]int
}

// NewHeader builds a Header from the first parsed row.
func NewHeader(row []string) Header {
	idx := make(map[string]int, len(row))
	for i, cell := range row {
		key := normalizeKey(cell)
		if key == "" {
			continue
		}
		// First occurrence wins on duplicate headers.
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return Header{index: idx}
}

// Index returns the cell index of the named column and whether it exists.
func (h Header) Index(name string) (int, bool) {
	i, ok := h.index[normalizeKey(name)]
	return i, ok
}

// Cell returns the trimmed cell under the named column for a data row.
// Rows shorter than the header yield the empty string.
func (h Header) Cell(row []string, name string) string {
	i, ok := h.Index(name)
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
