package processors

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/username/foliosum/backend/src/models"
)

// ErrNoDateColumn is returned when no column of the ledger yields a single
// parseable date. Window-dependent stages cannot run; callers should report
// zero equity activity and still serve the window-independent aggregates.
var ErrNoDateColumn = errors.New("no usable date column in ledger")

// WindowProcessor determines the activity window bounding the date filters.
type WindowProcessor interface {
	Extract(ledger *models.Ledger) (*models.ActivityWindow, error)
}

// PositionResult holds the per-symbol equity aggregates plus the scalar trade
// counts for the activity window.
type PositionResult struct {
	NumEquityTrades  int
	NumEquityOptions int
	Symbols          map[string]models.SymbolAggregate
}

// PositionProcessor aggregates equity positions and income inside the window.
type PositionProcessor interface {
	Process(ledger *models.Ledger, window *models.ActivityWindow) PositionResult
}

// DividendResult maps symbol to its signed cash dividend total.
type DividendResult map[string]decimal.Decimal

// DividendProcessor sums cash dividends per symbol over the full ledger.
type DividendProcessor interface {
	Process(ledger *models.Ledger) DividendResult
}

// UnderlyingProcessor rolls the full ledger up by underlying instrument.
type UnderlyingProcessor interface {
	Process(ledger *models.Ledger) map[string]models.UnderlyingAggregate
}

// SummaryProcessor folds the other processors' outputs into the named
// reconciliation buckets. It is a pure function: no I/O, no errors, missing
// symbols contribute zero.
type SummaryProcessor interface {
	Process(
		ledger *models.Ledger,
		positions PositionResult,
		dividends DividendResult,
		underlyings map[string]models.UnderlyingAggregate,
	) models.ReconciliationSummary
}
