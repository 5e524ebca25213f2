package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InvoiceItemInput is one line of a new or updated document.
type InvoiceItemInput struct {
	Description    string
	Quantity       string
	UnitPrice      string
	TaxRatePercent string
}

// InvoiceInput holds the fields to create an invoice or quote. Totals are
// always computed server-side from the items, never taken from the caller.
type InvoiceInput struct {
	CustomerID uuid.UUID
	DocKind    DocKind
	Date       time.Time
	DueDate    *time.Time
	Status     InvoiceStatus
	Notes      string
	Items      []InvoiceItemInput
}

// InvoiceService manages invoices and quotes, scoped to an owner. Mutations
// that change what a customer owes adjust the cached customer balance inside
// the same database transaction.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, ownerID uuid.UUID, input InvoiceInput) (*Invoice, error)
	GetInvoices(ctx context.Context, ownerID uuid.UUID, kind DocKind, status *InvoiceStatus) ([]Invoice, error)
	GetInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*Invoice, error)
	UpdateStatus(ctx context.Context, ownerID, invoiceID uuid.UUID, status InvoiceStatus) (*Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error
}

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

// countsTowardBalance reports whether a document contributes to the cached
// customer balance: real invoices that are neither draft nor cancelled.
func countsTowardBalance(kind DocKind, status InvoiceStatus) bool {
	if kind != DocKindInvoice {
		return false
	}
	return status != InvoiceStatusDraft && status != InvoiceStatusCancelled
}

// validTransitions for invoices; quotes share draft/sent and end in
// accepted or declined.
var validInvoiceStatuses = map[DocKind][]InvoiceStatus{
	DocKindInvoice: {InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	DocKindQuote:   {InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusAccepted, InvoiceStatusDeclined},
}

func statusAllowed(kind DocKind, status InvoiceStatus) bool {
	for _, s := range validInvoiceStatuses[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// parseItems converts raw item inputs to InvoiceItem rows with decimal fields.
func parseItems(invoiceID uuid.UUID, inputs []InvoiceItemInput) ([]InvoiceItem, error) {
	items := make([]InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		item := InvoiceItem{ID: uuid.New(), InvoiceID: invoiceID, Description: in.Description}
		var err error
		if item.Quantity, err = parsePositiveDecimal(in.Quantity); err != nil {
			return nil, fmt.Errorf("item %d quantity: %w", i+1, err)
		}
		if item.UnitPrice, err = parseNonNegativeDecimal(in.UnitPrice); err != nil {
			return nil, fmt.Errorf("item %d unit price: %w", i+1, err)
		}
		if item.TaxRatePercent, err = parseNonNegativeDecimal(in.TaxRatePercent); err != nil {
			return nil, fmt.Errorf("item %d tax rate: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// nextDocNumber increments the per-owner, per-kind sequence and formats the
// document number (INV-0001, QUO-0001).
func nextDocNumber(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, kind DocKind) (string, error) {
	var n int64
	err := tx.QueryRow(ctx, `
		INSERT INTO doc_sequences (owner_id, doc_kind, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (owner_id, doc_kind)
		DO UPDATE SET last_number = doc_sequences.last_number + 1
		RETURNING last_number`,
		ownerID, kind,
	).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", kind, err)
	}
	prefix := "INV"
	if kind == DocKindQuote {
		prefix = "QUO"
	}
	return fmt.Sprintf("%s-%04d", prefix, n), nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, input InvoiceInput) (*Invoice, error) {
	if input.DocKind == "" {
		input.DocKind = DocKindInvoice
	}
	if input.Status == "" {
		input.Status = InvoiceStatusDraft
	}
	if !statusAllowed(input.DocKind, input.Status) {
		return nil, fmt.Errorf("status %q not valid for %s", input.Status, input.DocKind)
	}
	if len(input.Items) == 0 {
		return nil, errors.New("document must have at least one line item")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	invoiceID := uuid.New()
	items, err := parseItems(invoiceID, input.Items)
	if err != nil {
		return nil, err
	}
	totals := ComputeDocumentTotals(items)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	number, err := nextDocNumber(ctx, tx, ownerID, input.DocKind)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{}
	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (id, owner_id, customer_id, doc_kind, number, date, due_date, status, subtotal, tax_amount, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, owner_id, customer_id, doc_kind, number, date, due_date, status, subtotal, tax_amount, total, notes, created_at`,
		invoiceID, ownerID, input.CustomerID, input.DocKind, number, input.Date, input.DueDate,
		input.Status, totals.Subtotal, totals.TaxAmount, totals.Total, toPtr(input.Notes),
	).Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.DocKind, &inv.Number, &inv.Date, &inv.DueDate,
		&inv.Status, &inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.Notes, &inv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", input.DocKind, err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, tax_rate_percent)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice, item.TaxRatePercent,
		)
		if err != nil {
			return nil, fmt.Errorf("insert line item: %w", err)
		}
	}

	if countsTowardBalance(inv.DocKind, inv.Status) {
		if err := adjustCustomerBalance(ctx, tx, ownerID, inv.CustomerID, inv.Total); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit %s: %w", input.DocKind, err)
	}
	inv.Items = items
	return inv, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, ownerID uuid.UUID, kind DocKind, status *InvoiceStatus) ([]Invoice, error) {
	q := `
		SELECT id, owner_id, customer_id, doc_kind, number, date, due_date, status, subtotal, tax_amount, total, notes, created_at
		FROM invoices
		WHERE owner_id = $1 AND doc_kind = $2`
	args := []any{ownerID, kind}
	if status != nil {
		args = append(args, *status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += " ORDER BY date DESC, number DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get %ss: %w", kind, err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.DocKind, &inv.Number,
			&inv.Date, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.TaxAmount, &inv.Total,
			&inv.Notes, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *invoiceService) GetInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*Invoice, error) {
	inv := &Invoice{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, customer_id, doc_kind, number, date, due_date, status, subtotal, tax_amount, total, notes, created_at
		FROM invoices
		WHERE owner_id = $1 AND id = $2`,
		ownerID, invoiceID,
	).Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.DocKind, &inv.Number, &inv.Date, &inv.DueDate,
		&inv.Status, &inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.Notes, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s not found: %w", invoiceID, ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice %s: %w", invoiceID, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, tax_rate_percent
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY description`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.TaxRatePercent); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	return inv, rows.Err()
}

// UpdateStatus moves a document to a new status. If the transition changes
// whether the invoice counts toward the customer balance, the cached balance
// is adjusted in the same transaction.
func (s *invoiceService) UpdateStatus(ctx context.Context, ownerID, invoiceID uuid.UUID, status InvoiceStatus) (*Invoice, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv := &Invoice{}
	err = tx.QueryRow(ctx, `
		SELECT id, owner_id, customer_id, doc_kind, number, date, due_date, status, subtotal, tax_amount, total, notes, created_at
		FROM invoices
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE`,
		ownerID, invoiceID,
	).Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.DocKind, &inv.Number, &inv.Date, &inv.DueDate,
		&inv.Status, &inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.Notes, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s not found: %w", invoiceID, ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice %s: %w", invoiceID, err)
	}

	if !statusAllowed(inv.DocKind, status) {
		return nil, fmt.Errorf("status %q not valid for %s", status, inv.DocKind)
	}

	wasCounted := countsTowardBalance(inv.DocKind, inv.Status)
	willCount := countsTowardBalance(inv.DocKind, status)

	if _, err := tx.Exec(ctx,
		"UPDATE invoices SET status = $3 WHERE owner_id = $1 AND id = $2",
		ownerID, invoiceID, status,
	); err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}

	switch {
	case !wasCounted && willCount:
		err = adjustCustomerBalance(ctx, tx, ownerID, inv.CustomerID, inv.Total)
	case wasCounted && !willCount:
		err = adjustCustomerBalance(ctx, tx, ownerID, inv.CustomerID, inv.Total.Neg())
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}
	inv.Status = status
	return inv, nil
}

// DeleteInvoice removes a document and its items, backing the amount out of
// the cached customer balance when the invoice was counted.
func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID uuid.UUID
	var kind DocKind
	var status InvoiceStatus
	var total decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT customer_id, doc_kind, status, total
		FROM invoices
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE`,
		ownerID, invoiceID,
	).Scan(&customerID, &kind, &status, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("invoice %s not found: %w", invoiceID, ErrNotFound)
		}
		return fmt.Errorf("get invoice %s: %w", invoiceID, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM invoices WHERE owner_id = $1 AND id = $2", ownerID, invoiceID); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	if countsTowardBalance(kind, status) {
		if err := adjustCustomerBalance(ctx, tx, ownerID, customerID, total.Neg()); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}
