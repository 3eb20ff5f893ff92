package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/foliosum/backend/src/models"
)

// summaryProcessorImpl implements the SummaryProcessor interface.
type summaryProcessorImpl struct{}

// NewSummaryProcessor creates a new instance of SummaryProcessor.
func NewSummaryProcessor() SummaryProcessor {
	return &summaryProcessorImpl{}
}

// Process combines the aggregates into the named reconciliation buckets.
//
// Symbols with a nonzero net quantity are open positions: their income is
// still exposed, so it enters OpenEquityExposure negated. Symbols whose net
// quantity is zero are fully closed: their income is realized P/L. Deposits
// and the per-root derivative P/L are folded from the full ledger here, with
// no date window. NetCash is the signed sum of all buckets minus deposits; on
// a fully reconciled ledger it ties the reported activity back to the cash
// that funded it.
func (p *summaryProcessorImpl) Process(
	ledger *models.Ledger,
	positions PositionResult,
	dividends DividendResult,
	underlyings map[string]models.UnderlyingAggregate,
) models.ReconciliationSummary {
	summary := models.ReconciliationSummary{
		DerivativePLByRoot: make(map[string]decimal.Decimal),
	}

	for _, agg := range positions.Symbols {
		if agg.NetQuantity.IsZero() {
			summary.RealizedEquityPL = summary.RealizedEquityPL.Add(agg.TotalIncome)
		} else {
			summary.OpenEquityExposure = summary.OpenEquityExposure.Sub(agg.TotalIncome)
		}
	}

	for _, total := range dividends {
		summary.TotalDividends = summary.TotalDividends.Add(total)
	}

	for _, agg := range underlyings {
		summary.OpenDerivativeExposure = summary.OpenDerivativeExposure.Add(agg.DerivativeValue)
	}

	for _, rec := range ledger.Records {
		// Rows with an empty or literal "0" root symbol carry no option
		// grouping and are excluded from derivative P/L.
		if rec.RootSymbol != "" && rec.RootSymbol != "0" {
			summary.DerivativePLByRoot[rec.RootSymbol] =
				summary.DerivativePLByRoot[rec.RootSymbol].Add(rec.Value.Mul(rec.Quantity))
		}
		if rec.SubType == models.SubTypeDeposit {
			summary.TotalDeposits = summary.TotalDeposits.Add(rec.Value)
		}
	}

	for _, pl := range summary.DerivativePLByRoot {
		summary.DerivativePL = summary.DerivativePL.Add(pl)
	}

	summary.NetCash = summary.OpenEquityExposure.
		Add(summary.TotalDividends).
		Add(summary.RealizedEquityPL).
		Add(summary.OpenDerivativeExposure).
		Add(summary.DerivativePL).
		Sub(summary.TotalDeposits)

	return summary
}
