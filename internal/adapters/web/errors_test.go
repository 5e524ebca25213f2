package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
)

func TestWriteServiceError_NotFound(t *testing.T) {
	svc := core.NewStatementService(core.NewMemoryLedgerSource())
	_, err := svc.GenerateStatement(context.Background(), uuid.New(), uuid.New(), time.Time{})
	if err == nil {
		t.Fatal("expected error for unknown customer")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/customers/x/statement", nil)
	writeServiceError(rec, req, err)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", body.Code)
	}
}

func TestWriteServiceError_Internal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/customers", nil)
	writeServiceError(rec, req, errors.New("connection reset"))

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
