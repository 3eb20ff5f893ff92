// src/models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one ledger row from a brokerage activity export. A Record is
// immutable once loaded; every derived figure is computed from a read-only
// slice of Records.
type Record struct {
	Date             *time.Time      `json:"date"`              // nil when the cell is absent or unparseable
	Symbol           string          `json:"symbol"`            // "" means absent (non-matching)
	UnderlyingSymbol string          `json:"underlying_symbol"` // "" means absent
	RootSymbol       string          `json:"root_symbol"`       // "" means absent
	InstrumentType   string          `json:"instrument_type"`   // e.g. "Equity", "Equity Option"
	SubType          string          `json:"sub_type"`          // e.g. "Dividend", "Buy to Open", "Deposit"
	Quantity         decimal.Decimal `json:"quantity"`          // zero when the cell fails numeric coercion
	AveragePrice     decimal.Decimal `json:"average_price"`
	Value            decimal.Decimal `json:"value"`
}

// Ledger is the ordered set of rows from one uploaded file. Headers and Rows
// keep the raw cells so the activity-window extractor can scan columns the
// loader did not map to Record fields.
type Ledger struct {
	Headers []string
	Rows    [][]string
	Records []Record
}

// ActivityWindow is the activity date range of a ledger. Dates are UTC
// calendar dates (time component zeroed). SpanDays is the absolute difference
// in days; an inverted column order is treated as a data artifact, not an
// error.
type ActivityWindow struct {
	FirstDate time.Time `json:"first_date"`
	LastDate  time.Time `json:"last_date"`
	SpanDays  int       `json:"span_days"`
}

// Contains reports whether d falls inside the window, inclusive on both ends.
func (w ActivityWindow) Contains(d time.Time) bool {
	return !d.Before(w.FirstDate) && !d.After(w.LastDate)
}

// SymbolAggregate holds the per-equity-symbol figures for rows inside the
// activity window. NetQuantity is the authoritative open position: the sum of
// "Buy to Open" quantities minus the sum of "Sell to Close" quantities.
// TotalCombined adds share counts to currency income; it is a legacy display
// figure, not a financial quantity.
type SymbolAggregate struct {
	Count         int             `json:"count"`
	NetQuantity   decimal.Decimal `json:"net_quantity"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalCombined decimal.Decimal `json:"total_combined"`
}

// UnderlyingAggregate rolls a ledger up by underlying instrument, covering
// equities and the derivatives written against them.
type UnderlyingAggregate struct {
	Count           int             `json:"count"`
	ValueSum        decimal.Decimal `json:"value_sum"`        // sum of Value over rows with nonzero Value
	QuantitySum     decimal.Decimal `json:"quantity_sum"`     // sum of Quantity over rows with nonzero Quantity
	GlobalValue     decimal.Decimal `json:"global_value"`     // ValueSum + QuantitySum (legacy display figure, mixed units)
	DerivativeValue decimal.Decimal `json:"derivative_value"` // sum of Value over rows with InstrumentType != "Equity"
}

// ReconciliationSummary ties positions, income, dividends and derivatives back
// to net deposits. Every figure is signed; rendering them as absolute values
// is a presentation concern. The signs drive NetCash.
type ReconciliationSummary struct {
	OpenEquityExposure     decimal.Decimal            `json:"open_equity_exposure"`
	RealizedEquityPL       decimal.Decimal            `json:"realized_equity_pl"`
	TotalDividends         decimal.Decimal            `json:"total_dividends"`
	OpenDerivativeExposure decimal.Decimal            `json:"open_derivative_exposure"`
	DerivativePL           decimal.Decimal            `json:"derivative_pl"`
	DerivativePLByRoot     map[string]decimal.Decimal `json:"derivative_pl_by_root"`
	TotalDeposits          decimal.Decimal            `json:"total_deposits"`
	NetCash                decimal.Decimal            `json:"net_cash"`
}

// LedgerSummary is the full structured result for one upload. Window is nil
// when the ledger carries no usable date column; the window-dependent counts
// and the Symbols map are then empty while the full-ledger aggregates are
// still populated. HasEquityRows and HasDerivativeRows are full-ledger
// presence flags so callers can tell a zero-activity ledger from one whose
// activity fell outside the window.
type LedgerSummary struct {
	UploadID          string                         `json:"upload_id"`
	Window            *ActivityWindow                `json:"activity_window,omitempty"`
	NumEquityTrades   int                            `json:"num_equity_trades"`
	NumEquityOptions  int                            `json:"num_equity_options"`
	Symbols           map[string]SymbolAggregate     `json:"symbols"`
	Dividends         map[string]decimal.Decimal     `json:"dividends"`
	Underlyings       map[string]UnderlyingAggregate `json:"underlyings"`
	Reconciliation    ReconciliationSummary          `json:"reconciliation"`
	HasEquityRows     bool                           `json:"has_equity_rows"`
	HasDerivativeRows bool                           `json:"has_derivative_rows"`
	RecordCount       int                            `json:"record_count"`
}
