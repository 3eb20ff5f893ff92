// src/parsers/csv_parser.go
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/foliosum/backend/src/models"
	"github.com/username/foliosum/backend/src/security/validation"
	"github.com/username/foliosum/backend/src/utils"
)

// Canonical column names of the activity export. Header matching is
// case-insensitive and whitespace-trimmed.
const (
	colDate             = "date"
	colSymbol           = "symbol"
	colUnderlyingSymbol = "underlying symbol"
	colRootSymbol       = "root symbol"
	colInstrumentType   = "instrument type"
	colSubType          = "sub type"
	colQuantity         = "quantity"
	colAveragePrice     = "average price"
	colValue            = "value"
)

// CSVLedgerParser implements the Parser interface for comma-separated
// activity exports with a header row.
type CSVLedgerParser struct{}

func NewCSVLedgerParser() *CSVLedgerParser {
	return &CSVLedgerParser{}
}

// Parse reads the export into a Ledger. The raw headers and rows are retained
// alongside the typed Records; the activity-window extractor scans the raw
// columns directly. Numeric cells that fail coercion become zero, date cells
// that fail coercion become absent, and missing classification columns leave
// their fields empty (non-matching). Only a structurally unreadable input
// fails, with ErrMalformedLedger.
func (p *CSVLedgerParser) Parse(file io.Reader) (*models.Ledger, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header row: %v", ErrMalformedLedger, err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read records: %v", ErrMalformedLedger, err)
	}

	for i := range header {
		header[i] = strings.TrimSpace(validation.StripUnprintable(header[i]))
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.ToLower(name)] = i
	}

	ledger := &models.Ledger{
		Headers: header,
		Rows:    rows,
		Records: make([]models.Record, 0, len(rows)),
	}

	for _, row := range rows {
		cell := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(validation.StripUnprintable(row[idx]))
		}

		var date *time.Time
		if t, ok := utils.ParseFlexibleDate(cell(colDate)); ok {
			date = &t
		}

		ledger.Records = append(ledger.Records, models.Record{
			Date:             date,
			Symbol:           cell(colSymbol),
			UnderlyingSymbol: cell(colUnderlyingSymbol),
			RootSymbol:       cell(colRootSymbol),
			InstrumentType:   cell(colInstrumentType),
			SubType:          cell(colSubType),
			Quantity:         utils.ParseDecimal(cell(colQuantity)),
			AveragePrice:     utils.ParseDecimal(cell(colAveragePrice)),
			Value:            utils.ParseDecimal(cell(colValue)),
		})
	}

	return ledger, nil
}
