// Package tsv converts between clipboard text and a 2D grid of cells.
//
// Cells are separated by tabs and rows by CRLF (a bare LF is accepted too).
// A cell that starts with a double quote is quoted: it may contain tabs,
// line breaks and doubled quotes, and ends at the next lone quote.
package tsv

import (
	"strings"
	"unicode"
)

// Decode parses clipboard text. Blank leading and trailing rows and columns
// are trimmed and short rows are padded, so the result is rectangular.
// Malformed input never fails: an unterminated quote runs to the end.
func Decode(text string) [][]string {
	var (
		rows  [][]string
		row   []string
		field strings.Builder
	)
	quoted := false
	pending := false

	endField := func() {
		v := field.String()
		if !quoted {
			v = strings.TrimSpace(v)
		}
		row = append(row, v)
		field.Reset()
		quoted = false
		pending = false
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' && !pending:
			pending = true
			quoted = true
			i = readQuoted(text, i+1, &field)
		case c == '\t':
			endField()
			i++
		case c == '\r' && i+1 < len(text) && text[i+1] == '\n':
			endRow()
			i += 2
		case c == '\n':
			endRow()
			i++
		default:
			pending = true
			field.WriteByte(c)
			i++
		}
	}
	if pending || len(row) > 0 {
		endRow()
	}
	return trim(rows)
}

// readQuoted consumes a quoted field body starting after the opening quote and
// returns the index just past the closing quote.
func readQuoted(text string, i int, field *strings.Builder) int {
	for i < len(text) {
		c := text[i]
		if c == '"' {
			if i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i += 2
				continue
			}
			return i + 1
		}
		field.WriteByte(c)
		i++
	}
	return i
}

func trim(rows [][]string) [][]string {
	firstRow, lastRow := -1, -1
	firstCol, lastCol := -1, -1
	for r, cells := range rows {
		for c, v := range cells {
			if v == "" {
				continue
			}
			if firstRow < 0 {
				firstRow = r
			}
			lastRow = r
			if firstCol < 0 || c < firstCol {
				firstCol = c
			}
			if c > lastCol {
				lastCol = c
			}
		}
	}
	if firstRow < 0 {
		return nil
	}

	out := make([][]string, 0, lastRow-firstRow+1)
	for _, cells := range rows[firstRow : lastRow+1] {
		line := make([]string, lastCol-firstCol+1)
		for c := firstCol; c <= lastCol && c < len(cells); c++ {
			line[c-firstCol] = cells[c]
		}
		out = append(out, line)
	}
	return out
}

// Encode renders cells as clipboard text: cells joined by tabs, each row
// terminated by CRLF.
func Encode(rows [][]string) string {
	var b strings.Builder
	for _, cells := range rows {
		for c, v := range cells {
			if c > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(escape(v))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

func escape(v string) string {
	if !needsQuotes(v) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func needsQuotes(v string) bool {
	if v == "" {
		return false
	}
	if strings.ContainsAny(v, "\t\n\r") || strings.HasPrefix(v, `"`) {
		return true
	}
	first := []rune(v)[0]
	last := []rune(v)[len([]rune(v))-1]
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}
