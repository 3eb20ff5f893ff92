package services

import (
	"errors"
	"io"

	"github.com/username/foliosum/backend/src/models"
)

var (
	// ErrParsingFailed wraps parsers.ErrMalformedLedger and friends: the
	// upload could not be read as tabular data. Fatal, surfaced to the user.
	ErrParsingFailed = errors.New("error parsing ledger file")

	// ErrProcessingFailed covers internal failures after a successful parse
	// (persistence, serialization). Not the user's fault.
	ErrProcessingFailed = errors.New("error processing ledger")

	// ErrSummaryNotFound is returned when an upload ID matches nothing.
	ErrSummaryNotFound = errors.New("no summary found for upload id")
)

// LedgerService is the core boundary of the engine: it receives a raw upload,
// runs the aggregation pipeline, and serves the structured summaries back.
type LedgerService interface {
	ProcessUpload(fileReader io.Reader) (*models.LedgerSummary, error)
	GetSummary(uploadID string) (*models.LedgerSummary, error)
}
