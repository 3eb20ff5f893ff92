// src/handlers/summary_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/username/foliosum/backend/src/logger"
	"github.com/username/foliosum/backend/src/models"
	"github.com/username/foliosum/backend/src/services"
	"github.com/username/foliosum/backend/src/utils"
)

type SummaryHandler struct {
	ledgerService services.LedgerService
}

func NewSummaryHandler(service services.LedgerService) *SummaryHandler {
	return &SummaryHandler{
		ledgerService: service,
	}
}

// HandleGetSummary re-serves a previously computed summary by upload ID, with
// ETag support so the presentation layer can poll cheaply.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("uploadID")
	if _, err := uuid.Parse(uploadID); err != nil {
		utils.SendJSONError(w, "invalid upload id", http.StatusBadRequest)
		return
	}

	summary, err := h.ledgerService.GetSummary(uploadID)
	if err != nil {
		if errors.Is(err, services.ErrSummaryNotFound) {
			utils.SendJSONError(w, fmt.Sprintf("no summary for upload %s", uploadID), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving summary", "uploadID", uploadID, "error", err)
		utils.SendJSONError(w, "An internal error occurred while retrieving the summary.", http.StatusInternalServerError)
		return
	}

	// Empty maps serialize as {} rather than null so chart code can iterate
	// without nil checks.
	if summary.Symbols == nil {
		summary.Symbols = make(map[string]models.SymbolAggregate)
	}
	if summary.Dividends == nil {
		summary.Dividends = make(map[string]decimal.Decimal)
	}
	if summary.Underlyings == nil {
		summary.Underlyings = make(map[string]models.UnderlyingAggregate)
	}
	if summary.Reconciliation.DerivativePLByRoot == nil {
		summary.Reconciliation.DerivativePLByRoot = make(map[string]decimal.Decimal)
	}

	currentETag, etagErr := utils.GenerateETag(summary)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for summary", "uploadID", uploadID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Debug("ETag match for summary", "uploadID", uploadID, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		logger.L.Warn("Proceeding without ETag check due to ETag generation error or empty ETag", "uploadID", uploadID)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error generating JSON response for summary", "uploadID", uploadID, "error", err)
	}
}
