// src/parsers/parser.go
package parsers

import (
	"errors"
	"io"

	"github.com/username/foliosum/backend/src/models"
)

// ErrMalformedLedger is returned when the input cannot be read as tabular
// data at all. It is the only user-facing failure from the loading stage;
// per-cell coercion problems degrade to zero/absent instead.
var ErrMalformedLedger = errors.New("ledger is not parseable as tabular data")

// Parser turns a raw upload into a Ledger.
type Parser interface {
	Parse(file io.Reader) (*models.Ledger, error)
}
