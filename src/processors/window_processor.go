package processors

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/foliosum/backend/src/models"
	"github.com/username/foliosum/backend/src/utils"
)

// windowProcessorImpl implements the WindowProcessor interface.
type windowProcessorImpl struct {
	// dateColumn, when non-empty, names the authoritative activity-date
	// column. When empty the extractor infers it: the first column (in
	// header order) that is not uniformly numeric and yields at least one
	// parseable date wins.
	dateColumn string
}

// NewWindowProcessor creates a WindowProcessor. dateColumn is the optional
// caller-supplied column-role mapping; pass "" to infer the column.
func NewWindowProcessor(dateColumn string) WindowProcessor {
	return &windowProcessorImpl{dateColumn: dateColumn}
}

func (p *windowProcessorImpl) Extract(ledger *models.Ledger) (*models.ActivityWindow, error) {
	if p.dateColumn != "" {
		for idx, header := range ledger.Headers {
			if strings.EqualFold(header, p.dateColumn) {
				if w := windowFromColumn(ledger.Rows, idx); w != nil {
					return w, nil
				}
				return nil, fmt.Errorf("%w: configured column %q has no parseable dates", ErrNoDateColumn, p.dateColumn)
			}
		}
		// Configured column absent from this export; fall back to inference.
	}

	for idx := range ledger.Headers {
		if columnUniformlyNumeric(ledger.Rows, idx) {
			continue
		}
		if w := windowFromColumn(ledger.Rows, idx); w != nil {
			return w, nil
		}
	}
	return nil, ErrNoDateColumn
}

// windowFromColumn bulk-parses one column's cells as dates and returns the
// window spanning them, or nil when no cell parses.
func windowFromColumn(rows [][]string, idx int) *models.ActivityWindow {
	var first, last time.Time
	found := false
	for _, row := range rows {
		if idx >= len(row) {
			continue
		}
		d, ok := utils.ParseFlexibleDate(row[idx])
		if !ok {
			continue
		}
		if !found {
			first, last = d, d
			found = true
			continue
		}
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	if !found {
		return nil
	}
	return &models.ActivityWindow{
		FirstDate: first,
		LastDate:  last,
		SpanDays:  utils.DaysBetween(first, last),
	}
}

// columnUniformlyNumeric reports whether every non-empty cell of the column
// parses as a number. Such columns carry quantities or prices and are skipped
// when hunting for the date column.
func columnUniformlyNumeric(rows [][]string, idx int) bool {
	seen := false
	for _, row := range rows {
		if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
			continue
		}
		if !utils.IsNumeric(row[idx]) {
			return false
		}
		seen = true
	}
	return seen
}
