package core_test

import (
	"context"
	"os"
	"testing"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE invoice_items, invoices, payments, doc_sequences,
		               supplier_payments, suppliers, staff, stock_items,
		               workflows, fuel_logs, customers, users CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

func seedOwner(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ownerID := uuid.New()
	hash, err := core.HashPassword("test-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = pool.Exec(context.Background(), `
		INSERT INTO users (id, email, password_hash, business_name)
		VALUES ($1, $2, $3, $4)`,
		ownerID, ownerID.String()+"@example.com", hash, "Test Business")
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return ownerID
}

func TestBalanceCache_InvoiceAndPaymentLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	ownerID := seedOwner(t, pool)

	customers := core.NewCustomerService(pool)
	invoices := core.NewInvoiceService(pool)
	payments := core.NewPaymentService(pool)

	cust, err := customers.CreateCustomer(ctx, ownerID, core.CustomerInput{Name: "Acme Ltd"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if !cust.CurrentBalance.IsZero() {
		t.Fatalf("new customer balance should be zero, got %s", cust.CurrentBalance)
	}

	// A draft invoice does not touch the balance.
	draft, err := invoices.CreateInvoice(ctx, ownerID, core.InvoiceInput{
		CustomerID: cust.ID,
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:     core.InvoiceStatusDraft,
		Items: []core.InvoiceItemInput{
			{Description: "Widgets", Quantity: "2", UnitPrice: "50", TaxRatePercent: "15"},
			{Description: "Delivery", Quantity: "1", UnitPrice: "100", TaxRatePercent: "0"},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if !draft.Total.Equal(dec("215")) {
		t.Fatalf("computed total = %s, want 215", draft.Total)
	}
	if draft.Number != "INV-0001" {
		t.Errorf("invoice number = %s, want INV-0001", draft.Number)
	}

	cust, _ = customers.GetCustomer(ctx, ownerID, cust.ID)
	if !cust.CurrentBalance.IsZero() {
		t.Fatalf("draft invoice must not affect balance, got %s", cust.CurrentBalance)
	}

	// Sending the invoice adds its total.
	if _, err := invoices.UpdateStatus(ctx, ownerID, draft.ID, core.InvoiceStatusSent); err != nil {
		t.Fatalf("send invoice: %v", err)
	}
	cust, _ = customers.GetCustomer(ctx, ownerID, cust.ID)
	if !cust.CurrentBalance.Equal(dec("215")) {
		t.Fatalf("balance after send = %s, want 215", cust.CurrentBalance)
	}

	// A payment subtracts.
	if _, err := payments.RecordPayment(ctx, ownerID, core.PaymentInput{
		CustomerID: cust.ID,
		Date:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Amount:     "100",
	}); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	cust, _ = customers.GetCustomer(ctx, ownerID, cust.ID)
	if !cust.CurrentBalance.Equal(dec("115")) {
		t.Fatalf("balance after payment = %s, want 115", cust.CurrentBalance)
	}

	// Recompute from the log agrees with the cache.
	recomputed, err := customers.RecomputeBalance(ctx, ownerID, cust.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !recomputed.Equal(dec("115")) {
		t.Fatalf("recomputed balance = %s, want 115", recomputed)
	}

	// So does the statement built from source transactions.
	statements := core.NewStatementService(core.NewPgLedgerSource(pool))
	stmt, err := statements.GenerateStatement(ctx, ownerID, cust.ID, time.Time{})
	if err != nil {
		t.Fatalf("generate statement: %v", err)
	}
	if !stmt.ClosingBalance.Equal(dec("115")) {
		t.Fatalf("statement closing balance = %s, want 115", stmt.ClosingBalance)
	}
	if len(stmt.Lines) != 2 {
		t.Fatalf("statement lines = %d, want 2", len(stmt.Lines))
	}
}

func TestWorkflowTransitions(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	ownerID := seedOwner(t, pool)

	workflows := core.NewWorkflowService(pool)
	w, err := workflows.CreateWorkflow(ctx, ownerID, core.WorkflowInput{Title: "Install shelving"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}
	if w.Status != core.WorkflowStatusPending {
		t.Fatalf("new workflow status = %s", w.Status)
	}

	// pending → completed is not allowed.
	if _, err := workflows.TransitionStatus(ctx, ownerID, w.ID, core.WorkflowStatusCompleted); err == nil {
		t.Fatalf("expected invalid transition error")
	}

	if _, err := workflows.TransitionStatus(ctx, ownerID, w.ID, core.WorkflowStatusInProgress); err != nil {
		t.Fatalf("start workflow: %v", err)
	}
	w, err = workflows.TransitionStatus(ctx, ownerID, w.ID, core.WorkflowStatusCompleted)
	if err != nil {
		t.Fatalf("complete workflow: %v", err)
	}
	if w.Status != core.WorkflowStatusCompleted {
		t.Fatalf("status = %s, want completed", w.Status)
	}
}
