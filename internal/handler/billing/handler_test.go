package billing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	handler "github.com/mindwell-labs/mindwell/backend/internal/handler/billing"
	"github.com/mindwell-labs/mindwell/backend/internal/model/billing"
)

func TestDumpReturnsRecordsAndCount(t *testing.T) {
	ledger := billing.NewLedger()
	ledger.Append(billing.NewRecord("sess-a", 2*time.Second, "gpt-4o-mini"))
	ledger.Append(billing.NewRecord("sess-b", 3*time.Second, "gpt-4o-mini"))

	r := chi.NewRouter()
	handler.New(ledger).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/billing-debug", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var resp struct {
		TotalTurns int              `json:"total_turns"`
		Records    []billing.Record `json:"records"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}

	if resp.TotalTurns != 2 {
		t.Fatalf("expected 2 turns, got %d", resp.TotalTurns)
	}
	if len(resp.Records) != 2 || resp.Records[0].SessionID != "sess-a" || resp.Records[1].SessionID != "sess-b" {
		t.Fatalf("unexpected records: %+v", resp.Records)
	}
}

func TestDumpEmptyLedger(t *testing.T) {
	r := chi.NewRouter()
	handler.New(billing.NewLedger()).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/billing-debug", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var resp struct {
		TotalTurns int `json:"total_turns"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if resp.TotalTurns != 0 {
		t.Fatalf("expected 0 turns, got %d", resp.TotalTurns)
	}
}
