package processors

import (
	"github.com/username/foliosum/backend/src/models"
)

// underlyingProcessorImpl implements the UnderlyingProcessor interface.
type underlyingProcessorImpl struct{}

// NewUnderlyingProcessor creates a new instance of UnderlyingProcessor.
func NewUnderlyingProcessor() UnderlyingProcessor {
	return &underlyingProcessorImpl{}
}

// Process aggregates the full ledger by underlying symbol. The symbol
// universe is the distinct non-absent underlying symbols. ValueSum and
// QuantitySum only accumulate nonzero cells; DerivativeValue accumulates
// Value over rows whose instrument type is anything but "Equity" (options,
// futures, and unclassified rows alike). GlobalValue is the arithmetic sum of
// the two nonzero sums — a legacy display figure mixing currency and share
// counts, kept as-is.
func (p *underlyingProcessorImpl) Process(ledger *models.Ledger) map[string]models.UnderlyingAggregate {
	result := make(map[string]models.UnderlyingAggregate)
	for _, rec := range ledger.Records {
		if rec.UnderlyingSymbol == "" {
			continue
		}

		agg := result[rec.UnderlyingSymbol]
		agg.Count++
		if !rec.Value.IsZero() {
			agg.ValueSum = agg.ValueSum.Add(rec.Value)
		}
		if !rec.Quantity.IsZero() {
			agg.QuantitySum = agg.QuantitySum.Add(rec.Quantity)
		}
		if rec.InstrumentType != models.InstrumentEquity {
			agg.DerivativeValue = agg.DerivativeValue.Add(rec.Value)
		}
		agg.GlobalValue = agg.ValueSum.Add(agg.QuantitySum)
		result[rec.UnderlyingSymbol] = agg
	}
	return result
}
