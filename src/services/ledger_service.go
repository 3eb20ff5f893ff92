// src/services/ledger_service.go
package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/foliosum/backend/src/database"
	"github.com/username/foliosum/backend/src/logger"
	"github.com/username/foliosum/backend/src/models"
	"github.com/username/foliosum/backend/src/parsers"
	"github.com/username/foliosum/backend/src/processors"
)

const ckSummary = "summary_%s"

type ledgerServiceImpl struct {
	parser              parsers.Parser
	windowProcessor     processors.WindowProcessor
	positionProcessor   processors.PositionProcessor
	dividendProcessor   processors.DividendProcessor
	underlyingProcessor processors.UnderlyingProcessor
	summaryProcessor    processors.SummaryProcessor
	summaryCache        *cache.Cache
}

func NewLedgerService(
	parser parsers.Parser,
	windowProcessor processors.WindowProcessor,
	positionProcessor processors.PositionProcessor,
	dividendProcessor processors.DividendProcessor,
	underlyingProcessor processors.UnderlyingProcessor,
	summaryProcessor processors.SummaryProcessor,
	summaryCache *cache.Cache,
) LedgerService {
	return &ledgerServiceImpl{
		parser:              parser,
		windowProcessor:     windowProcessor,
		positionProcessor:   positionProcessor,
		dividendProcessor:   dividendProcessor,
		underlyingProcessor: underlyingProcessor,
		summaryProcessor:    summaryProcessor,
		summaryCache:        summaryCache,
	}
}

// ProcessUpload runs the full pipeline on one uploaded ledger: parse, extract
// the activity window, aggregate, reconcile, persist, cache. Every invocation
// builds its own Ledger and summary; the only shared state is the cache and
// database, both keyed by the fresh upload ID, so concurrent uploads never
// see each other's aggregates.
func (s *ledgerServiceImpl) ProcessUpload(fileReader io.Reader) (*models.LedgerSummary, error) {
	overallStartTime := time.Now()

	ledger, err := s.parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	summary := s.summarize(ledger)
	summary.UploadID = uuid.NewString()

	if err := persistUpload(summary, ledger); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	s.summaryCache.Set(fmt.Sprintf(ckSummary, summary.UploadID), summary, cache.DefaultExpiration)

	logger.L.Info("ProcessUpload END",
		"uploadID", summary.UploadID,
		"records", summary.RecordCount,
		"duration", time.Since(overallStartTime))
	return summary, nil
}

// summarize runs the aggregation stages over a loaded ledger. A missing date
// column is not fatal: the window-dependent stages report zero activity while
// dividends, underlyings and deposits are still computed from the full ledger.
func (s *ledgerServiceImpl) summarize(ledger *models.Ledger) *models.LedgerSummary {
	window, err := s.windowProcessor.Extract(ledger)
	if err != nil {
		logger.L.Warn("No usable date column; reporting zero equity activity", "error", err)
		window = nil
	}

	positions := s.positionProcessor.Process(ledger, window)
	dividends := s.dividendProcessor.Process(ledger)
	underlyings := s.underlyingProcessor.Process(ledger)
	reconciliation := s.summaryProcessor.Process(ledger, positions, dividends, underlyings)

	hasEquity, hasDerivative := false, false
	for _, rec := range ledger.Records {
		switch rec.InstrumentType {
		case models.InstrumentEquity:
			hasEquity = true
		case "":
			// unclassified rows count toward neither flag
		default:
			hasDerivative = true
		}
	}

	return &models.LedgerSummary{
		Window:            window,
		NumEquityTrades:   positions.NumEquityTrades,
		NumEquityOptions:  positions.NumEquityOptions,
		Symbols:           positions.Symbols,
		Dividends:         dividends,
		Underlyings:       underlyings,
		Reconciliation:    reconciliation,
		HasEquityRows:     hasEquity,
		HasDerivativeRows: hasDerivative,
		RecordCount:       len(ledger.Records),
	}
}

func (s *ledgerServiceImpl) GetSummary(uploadID string) (*models.LedgerSummary, error) {
	cacheKey := fmt.Sprintf(ckSummary, uploadID)
	if cached, found := s.summaryCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for summary", "uploadID", uploadID)
		return cached.(*models.LedgerSummary), nil
	}

	logger.L.Debug("Cache miss for summary, reading from DB", "uploadID", uploadID)
	var summaryJSON string
	err := database.DB.QueryRow(`SELECT summary_json FROM uploads WHERE id = ?`, uploadID).Scan(&summaryJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSummaryNotFound, uploadID)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying summary for upload %s: %w", uploadID, err)
	}

	var summary models.LedgerSummary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, fmt.Errorf("error decoding stored summary for upload %s: %w", uploadID, err)
	}

	s.summaryCache.Set(cacheKey, &summary, cache.DefaultExpiration)
	return &summary, nil
}

// persistUpload stores the summary and the ledger rows it was derived from in
// one transaction, keyed by the upload ID.
func persistUpload(summary *models.LedgerSummary, ledger *models.Ledger) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error encoding summary: %w", err)
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.Exec(
		`INSERT INTO uploads (id, record_count, summary_json) VALUES (?, ?, ?)`,
		summary.UploadID, summary.RecordCount, string(summaryJSON),
	); err != nil {
		return fmt.Errorf("error inserting upload %s: %w", summary.UploadID, err)
	}

	stmt, err := dbTx.Prepare(`INSERT INTO ledger_records
		(upload_id, date, symbol, underlying_symbol, root_symbol, instrument_type, sub_type, quantity, average_price, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing record insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range ledger.Records {
		var date sql.NullString
		if rec.Date != nil {
			date = sql.NullString{String: rec.Date.Format("2006-01-02"), Valid: true}
		}
		if _, err := stmt.Exec(
			summary.UploadID, date, rec.Symbol, rec.UnderlyingSymbol, rec.RootSymbol,
			rec.InstrumentType, rec.SubType,
			rec.Quantity.String(), rec.AveragePrice.String(), rec.Value.String(),
		); err != nil {
			return fmt.Errorf("error inserting ledger record for upload %s: %w", summary.UploadID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing upload %s: %w", summary.UploadID, err)
	}
	return nil
}
