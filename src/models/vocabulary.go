package models

// Classification vocabulary of the activity export. Comparisons against these
// are exact; an absent cell ("") matches none of them.
const (
	InstrumentEquity       = "Equity"
	InstrumentEquityOption = "Equity Option"

	SubTypeDividend    = "Dividend"
	SubTypeBuyToOpen   = "Buy to Open"
	SubTypeSellToClose = "Sell to Close"
	SubTypeDeposit     = "Deposit"
)
