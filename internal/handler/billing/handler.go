// Package billing serves the diagnostic ledger dump. Unauthenticated in
// this demo scope; must sit behind access control before production use.
package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	billingmodel "github.com/mindwell-labs/mindwell/backend/internal/model/billing"
	"github.com/mindwell-labs/mindwell/backend/pkg/utils"
)

// Handler exposes the in-memory ledger for inspection.
type Handler struct {
	ledger *billingmodel.Ledger
}

// New creates the billing debug handler.
func New(ledger *billingmodel.Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// RegisterRoutes mounts the debug endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/billing-debug", h.handleDump)
}

func (h *Handler) handleDump(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"note":        "Debug endpoint - would be secured in production",
		"total_turns": h.ledger.Len(),
		"records":     h.ledger.Dump(),
	})
}
