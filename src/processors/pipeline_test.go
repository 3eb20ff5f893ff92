package processors_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/foliosum/backend/src/models"
	"github.com/username/foliosum/backend/src/parsers"
	"github.com/username/foliosum/backend/src/processors"
)

// pipelineResult bundles every stage's output for one parsed ledger, the way
// the service assembles a LedgerSummary.
type pipelineResult struct {
	Window         *models.ActivityWindow
	Positions      processors.PositionResult
	Dividends      processors.DividendResult
	Underlyings    map[string]models.UnderlyingAggregate
	Reconciliation models.ReconciliationSummary
}

func runPipeline(t *testing.T, csv string) (pipelineResult, error) {
	t.Helper()
	ledger, err := parsers.NewCSVLedgerParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)

	var result pipelineResult
	window, werr := processors.NewWindowProcessor("").Extract(ledger)
	if werr == nil {
		result.Window = window
	}
	result.Positions = processors.NewPositionProcessor().Process(ledger, result.Window)
	result.Dividends = processors.NewDividendProcessor().Process(ledger)
	result.Underlyings = processors.NewUnderlyingProcessor().Process(ledger)
	result.Reconciliation = processors.NewSummaryProcessor().Process(ledger, result.Positions, result.Dividends, result.Underlyings)
	return result, werr
}

func TestPipelineClosedPosition(t *testing.T) {
	csv := "Date,Symbol,Instrument Type,Sub Type,Quantity,Average Price\n" +
		"2023-01-05,ABC,Equity,Buy to Open,10,5\n" +
		"2023-02-01,ABC,Equity,Sell to Close,10,6\n"

	result, err := runPipeline(t, csv)
	require.NoError(t, err)

	require.NotNil(t, result.Window)
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), result.Window.FirstDate)
	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), result.Window.LastDate)
	assert.Equal(t, 27, result.Window.SpanDays)

	agg := result.Positions.Symbols["ABC"]
	assert.Equal(t, 2, agg.Count)
	assert.True(t, agg.NetQuantity.IsZero())
	assert.True(t, agg.TotalIncome.Equal(decimal.RequireFromString("110")))

	// Fully closed, so the income is realized P/L, not open exposure.
	assert.True(t, result.Reconciliation.RealizedEquityPL.Equal(decimal.RequireFromString("110")))
	assert.True(t, result.Reconciliation.OpenEquityExposure.IsZero())
	assert.True(t, result.Reconciliation.NetCash.Equal(decimal.RequireFromString("110")))
}

func TestPipelineDividendOnlyLedger(t *testing.T) {
	// No date column at all: window extraction fails, but dividends and
	// deposits must still come through with zero equity activity.
	csv := "Symbol,Sub Type,Value\n" +
		"XYZ,Dividend,-12.50\n"

	result, err := runPipeline(t, csv)
	require.ErrorIs(t, err, processors.ErrNoDateColumn)

	assert.Nil(t, result.Window)
	assert.Equal(t, 0, result.Positions.NumEquityTrades)
	assert.Equal(t, 0, result.Positions.NumEquityOptions)
	assert.Empty(t, result.Positions.Symbols)

	require.Contains(t, result.Dividends, "XYZ")
	assert.True(t, result.Dividends["XYZ"].Equal(decimal.RequireFromString("-12.5")))
	assert.True(t, result.Reconciliation.TotalDividends.Equal(decimal.RequireFromString("-12.5")))
	assert.True(t, result.Reconciliation.NetCash.Equal(decimal.RequireFromString("-12.5")))
}

func TestPipelineMalformedQuantityStillCounts(t *testing.T) {
	csv := "Date,Symbol,Instrument Type,Sub Type,Quantity,Average Price\n" +
		"2023-01-05,ABC,Equity,Buy to Open,N/A,5\n"

	result, err := runPipeline(t, csv)
	require.NoError(t, err)

	agg := result.Positions.Symbols["ABC"]
	assert.Equal(t, 1, agg.Count, "the malformed cell contributes zero but the row is not dropped")
	assert.True(t, agg.NetQuantity.IsZero())
	assert.True(t, agg.TotalIncome.IsZero())
	assert.True(t, agg.TotalCombined.IsZero())
}

func TestPipelineMixedLedgerReconciles(t *testing.T) {
	csv := "Date,Symbol,Underlying Symbol,Root Symbol,Instrument Type,Sub Type,Quantity,Average Price,Value\n" +
		"2023-01-02,,,,,Deposit,0,0,5000\n" +
		"2023-01-05,ABC,ABC,,Equity,Buy to Open,10,5,-50\n" +
		"2023-02-01,ABC,ABC,,Equity,Sell to Close,10,6,60\n" +
		"2023-01-10,ABC 230120C50,ABC,ABC1,Equity Option,Sell to Open,1,2.50,250\n" +
		"2023-03-01,XYZ,,,Equity,Dividend,0,0,12.40\n"

	result, err := runPipeline(t, csv)
	require.NoError(t, err)

	require.NotNil(t, result.Window)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), result.Window.FirstDate)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), result.Window.LastDate)

	assert.Equal(t, 3, result.Positions.NumEquityTrades, "two trades plus the dividend-classified equity row")
	assert.Equal(t, 1, result.Positions.NumEquityOptions)

	require.Contains(t, result.Underlyings, "ABC")
	abc := result.Underlyings["ABC"]
	assert.Equal(t, 3, abc.Count)
	assert.True(t, abc.DerivativeValue.Equal(decimal.RequireFromString("250")), "got %s", abc.DerivativeValue)

	r := result.Reconciliation
	assert.True(t, r.TotalDeposits.Equal(decimal.RequireFromString("5000")))
	assert.True(t, r.TotalDividends.Equal(decimal.RequireFromString("12.4")))
	assert.True(t, r.DerivativePL.Equal(decimal.RequireFromString("250")), "250 * 1 grouped under ABC1, got %s", r.DerivativePL)
	assert.True(t, r.OpenDerivativeExposure.Equal(decimal.RequireFromString("250")))
	assert.True(t, r.RealizedEquityPL.Equal(decimal.RequireFromString("110")))

	// -0 + 12.4 + 110 + 250 + 250 - 5000
	assert.True(t, r.NetCash.Equal(decimal.RequireFromString("-4377.6")), "got %s", r.NetCash)
}

func TestPipelineIdempotent(t *testing.T) {
	csv := "Date,Symbol,Underlying Symbol,Root Symbol,Instrument Type,Sub Type,Quantity,Average Price,Value\n" +
		"2023-01-05,ABC,ABC,,Equity,Buy to Open,10,5,-50\n" +
		"2023-01-10,ABC 230120C50,ABC,ABC1,Equity Option,Sell to Open,1,2.50,250\n" +
		"2023-01-12,XYZ,,,,Dividend,0,0,3.30\n"

	first, err1 := runPipeline(t, csv)
	second, err2 := runPipeline(t, csv)
	require.NoError(t, err1)
	require.NoError(t, err2)

	// JSON sorts map keys, so equal aggregates serialize identically.
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "two runs over the same ledger must agree bit for bit")
}

func TestPipelineErrorsAreTyped(t *testing.T) {
	_, err := parsers.NewCSVLedgerParser().Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsers.ErrMalformedLedger))
}
