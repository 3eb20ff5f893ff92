package processors

import (
	"github.com/username/foliosum/backend/src/models"
)

// dividendProcessorImpl implements the DividendProcessor interface.
type dividendProcessorImpl struct{}

// NewDividendProcessor creates a new instance of DividendProcessor.
func NewDividendProcessor() DividendProcessor {
	return &dividendProcessorImpl{}
}

// Process sums Value per symbol over rows with sub type "Dividend". The full
// ledger is considered — unlike positions, dividends are not bounded by the
// activity window. Signs are preserved as stored: some exports encode
// dividends as negative cash flows, and normalization (if any) belongs to the
// presentation layer.
func (p *dividendProcessorImpl) Process(ledger *models.Ledger) DividendResult {
	result := make(DividendResult)
	for _, rec := range ledger.Records {
		if rec.SubType != models.SubTypeDividend || rec.Symbol == "" {
			continue
		}
		result[rec.Symbol] = result[rec.Symbol].Add(rec.Value)
	}
	return result
}
