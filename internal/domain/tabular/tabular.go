// Package tabular converts raw delimited text into rows of string cells.
//
// The parser is deliberately permissive: spreadsheet "publish to web"
// exports vary in delimiter, quoting, and line endings, and a malformed
// input must still yield best-effort rows rather than an error.
package tabular

import "strings"

// Delimiter candidates. The choice is made once from the first line and
// applies to the whole input.
const (
	comma     = ','
	semicolon = ';'
)

// DetectDelimiter inspects the first line of text and returns the field
// delimiter for the entire input: semicolon when the first line contains a
// semicolon and no comma, comma otherwise.
func DetectDelimiter(text string) rune {
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	if strings.ContainsRune(firstLine, semicolon) && !strings.ContainsRune(firstLine, comma) {
		return semicolon
	}
	return comma
}

// Parse tokenizes delimited text into rows of cells.
//
// A field may be wrapped in double quotes; inside quotes a doubled quote
// decodes to one literal quote, and delimiters and newlines are content.
// Carriage returns are dropped outside quotes and preserved inside. A
// newline outside quotes ends the row; end of input flushes the final row
// even without a trailing newline. Rows whose every cell trims to empty
// are discarded. An unterminated quote never raises; the remainder of the
// input becomes the final cell.
func Parse(text string) [][]string {
	delim := DetectDelimiter(text)

	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	endCell := func() {
		row = append(row, cell.String())
		cell.Reset()
	}
	endRow := func() {
		endCell()
		if !blankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote inside a quoted field.
				cell.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			endCell()
		case c == '\n' && !inQuotes:
			endRow()
		case c == '\r' && !inQuotes:
			// Normalized away; CRLF and stray CRs collapse to LF handling.
		default:
			cell.WriteRune(c)
		}
	}

	// Flush the last row when the input does not end with a newline or the
	// quoting never closed.
	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

// blankRow reports whether every cell is empty after trimming. Such rows
// (trailing blank lines included) carry no data and are dropped.
func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
