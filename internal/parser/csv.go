package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/deckdown/internal/deck"
)

// CSVImporter converts CSV files into decks of markdown table slides.
type CSVImporter struct{}

// csvBatchSize caps rows per slide so tables stay presentable.
const csvBatchSize = 12

func (p *CSVImporter) Parse(r io.Reader, filename string) (*deck.Deck, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	title := trimExt(filename, ".csv")
	d := &deck.Deck{Title: title}
	if len(records) == 0 {
		return d, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	b := newDeckBuilder()
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		// 1-indexed source rows, skipping the header.
		b.startSlide(1, fmt.Sprintf("Rows %d-%d", i+2, end+1))
		b.addText(markdownTable(headers, dataRows[i:end]))
	}

	return b.finish(title), nil
}

func markdownTable(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(escapeCells(headers), " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(headers)))
	for _, row := range rows {
		sb.WriteString("\n| " + strings.Join(escapeCells(padRow(row, len(headers))), " | ") + " |")
	}
	return sb.String()
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", "\\|")
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
