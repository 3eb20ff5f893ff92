package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/foliosum/backend/src/models"
)

// positionProcessorImpl implements the PositionProcessor interface.
type positionProcessorImpl struct{}

// NewPositionProcessor creates a new instance of PositionProcessor.
func NewPositionProcessor() PositionProcessor {
	return &positionProcessorImpl{}
}

// Process folds the equity rows inside the activity window into per-symbol
// aggregates and counts "Equity Option" rows in the same window as a scalar
// statistic. Per-symbol income is quantity * average price, summed over buys
// and sells alike. NetQuantity is computed directly from open/close flows:
// sum("Buy to Open" quantities) - sum("Sell to Close" quantities).
//
// A nil window means the ledger had no usable date column; the result is then
// empty (zero activity) rather than an error. Symbols never seen inside the
// window do not appear in the map — no zero-valued entries are injected. A
// row whose quantity failed numeric coercion still increments its symbol's
// count; the zero quantity simply contributes nothing to the sums.
func (p *positionProcessorImpl) Process(ledger *models.Ledger, window *models.ActivityWindow) PositionResult {
	result := PositionResult{Symbols: make(map[string]models.SymbolAggregate)}
	if window == nil {
		return result
	}

	buyToOpen := make(map[string]decimal.Decimal)
	sellToClose := make(map[string]decimal.Decimal)

	for _, rec := range ledger.Records {
		if rec.Date == nil || !window.Contains(*rec.Date) {
			continue
		}

		switch rec.InstrumentType {
		case models.InstrumentEquityOption:
			result.NumEquityOptions++
		case models.InstrumentEquity:
			result.NumEquityTrades++
			if rec.Symbol == "" {
				continue // absent symbol matches no per-symbol bucket
			}

			income := rec.Quantity.Mul(rec.AveragePrice)
			agg := result.Symbols[rec.Symbol]
			agg.Count++
			agg.TotalIncome = agg.TotalIncome.Add(income)
			agg.TotalCombined = agg.TotalCombined.Add(rec.Quantity.Add(income))
			result.Symbols[rec.Symbol] = agg

			switch rec.SubType {
			case models.SubTypeBuyToOpen:
				buyToOpen[rec.Symbol] = buyToOpen[rec.Symbol].Add(rec.Quantity)
			case models.SubTypeSellToClose:
				sellToClose[rec.Symbol] = sellToClose[rec.Symbol].Add(rec.Quantity)
			}
		}
	}

	for symbol, agg := range result.Symbols {
		agg.NetQuantity = buyToOpen[symbol].Sub(sellToClose[symbol])
		result.Symbols[symbol] = agg
	}

	return result
}
