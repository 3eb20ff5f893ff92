package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/foliosum/backend/src/models"
)

func dividendRow(symbol, value string) models.Record {
	return models.Record{
		Symbol:  symbol,
		SubType: models.SubTypeDividend,
		Value:   dec(value),
	}
}

func TestDividendPerSymbolSums(t *testing.T) {
	ledger := recordLedger(
		dividendRow("ABC", "10.50"),
		dividendRow("ABC", "4.50"),
		dividendRow("XYZ", "-12.50"), // some exports encode dividends negative; sign is preserved
		models.Record{Symbol: "ABC", SubType: models.SubTypeDeposit, Value: dec("1000")},
		models.Record{Symbol: "ABC", SubType: models.SubTypeBuyToOpen, Value: dec("-50")},
	)

	result := NewDividendProcessor().Process(ledger)

	assert.Len(t, result, 2)
	assert.True(t, result["ABC"].Equal(dec("15")), "got %s", result["ABC"])
	assert.True(t, result["XYZ"].Equal(dec("-12.5")), "got %s", result["XYZ"])
}

func TestDividendIgnoresWindow(t *testing.T) {
	// Dividends fold over the full ledger; dateless rows contribute too.
	ledger := recordLedger(
		models.Record{Date: datePtr(2019, 1, 1), Symbol: "OLD", SubType: models.SubTypeDividend, Value: dec("3")},
		dividendRow("NOW", "2"),
	)

	result := NewDividendProcessor().Process(ledger)

	assert.True(t, result["OLD"].Equal(dec("3")))
	assert.True(t, result["NOW"].Equal(dec("2")))
}

func TestDividendAbsentSymbolSkipped(t *testing.T) {
	ledger := recordLedger(
		dividendRow("", "5"),
	)

	result := NewDividendProcessor().Process(ledger)

	assert.Empty(t, result)
}
