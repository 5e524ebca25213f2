package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerSource supplies the raw records a statement is built from. The
// production implementation reads PostgreSQL; tests use the in-memory fake.
type LedgerSource interface {
	ListInvoices(ctx context.Context, ownerID uuid.UUID) ([]Invoice, error)
	ListPayments(ctx context.Context, ownerID uuid.UUID) ([]Payment, error)
	ListCustomers(ctx context.Context, ownerID uuid.UUID) ([]Customer, error)
}

// Statement is a finished client statement ready for rendering or export.
type Statement struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CutoffDate     time.Time       `json:"cutoff_date"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// DashboardSummary is the portfolio-level view for the owner's home screen.
type DashboardSummary struct {
	TotalOwing       decimal.Decimal `json:"total_owing"`
	CustomerCount    int             `json:"customer_count"`
	OpenInvoiceCount int             `json:"open_invoice_count"`
	RecentActivity   []Txn           `json:"recent_activity"`
}

// recentActivityLimit caps the dashboard activity feed.
const recentActivityLimit = 10

// StatementService generates client statements and portfolio summaries.
// Statements are recomputed from the transaction log on every request; the
// cached customer balance is never consulted here.
type StatementService interface {
	GenerateStatement(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) (*Statement, error)
	GetDashboard(ctx context.Context, ownerID uuid.UUID) (*DashboardSummary, error)
}

type statementService struct {
	source LedgerSource
}

// NewStatementService constructs a StatementService over the given source.
func NewStatementService(source LedgerSource) StatementService {
	return &statementService{source: source}
}

func (s *statementService) GenerateStatement(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) (*Statement, error) {
	customers, err := s.source.ListCustomers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	var customer *Customer
	for i := range customers {
		if customers[i].ID == customerID {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s not found: %w", customerID, ErrNotFound)
	}

	invoices, err := s.source.ListInvoices(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	payments, err := s.source.ListPayments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	if cutoff.IsZero() {
		cutoff = time.Now()
	}
	lines := BuildStatement(customerID, invoices, payments, cutoff)

	return &Statement{
		CustomerID:     customerID,
		CustomerName:   customer.Name,
		CutoffDate:     cutoff,
		Lines:          lines,
		ClosingBalance: OutstandingBalance(lines),
	}, nil
}

func (s *statementService) GetDashboard(ctx context.Context, ownerID uuid.UUID) (*DashboardSummary, error) {
	customers, err := s.source.ListCustomers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	invoices, err := s.source.ListInvoices(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	payments, err := s.source.ListPayments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	openInvoices := 0
	var activity []Txn
	for _, inv := range invoices {
		if inv.DocKind != DocKindInvoice {
			continue
		}
		if inv.Status == InvoiceStatusSent || inv.Status == InvoiceStatusOverdue {
			openInvoices++
		}
		if inv.Status == InvoiceStatusDraft || inv.Status == InvoiceStatusCancelled {
			continue
		}
		activity = append(activity, Txn{
			Date:      inv.Date,
			Kind:      TxnInvoice,
			Reference: inv.Number,
			SourceID:  inv.ID,
			Amount:    inv.Total,
		})
	}
	for _, p := range payments {
		activity = append(activity, Txn{
			Date:      p.Date,
			Kind:      TxnPayment,
			Reference: PaymentReference(p.ID),
			SourceID:  p.ID,
			Amount:    p.Amount.Neg(),
		})
	}

	// Newest first, capped.
	sort.SliceStable(activity, func(i, j int) bool { return activity[i].Date.After(activity[j].Date) })
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}

	return &DashboardSummary{
		TotalOwing:       TotalOwing(customers),
		CustomerCount:    len(customers),
		OpenInvoiceCount: openInvoices,
		RecentActivity:   activity,
	}, nil
}

// pgLedgerSource is the PostgreSQL LedgerSource.
type pgLedgerSource struct {
	pool *pgxpool.Pool
}

// NewPgLedgerSource constructs the production LedgerSource over a pool.
func NewPgLedgerSource(pool *pgxpool.Pool) LedgerSource {
	return &pgLedgerSource{pool: pool}
}

func (s *pgLedgerSource) ListInvoices(ctx context.Context, ownerID uuid.UUID) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, customer_id, doc_kind, number, date, due_date, status, subtotal, tax_amount, total, notes, created_at
		FROM invoices
		WHERE owner_id = $1
		ORDER BY date, created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.DocKind, &inv.Number,
			&inv.Date, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.TaxAmount, &inv.Total,
			&inv.Notes, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *pgLedgerSource) ListPayments(ctx context.Context, ownerID uuid.UUID) ([]Payment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, customer_id, date, amount, method, reference, created_at
		FROM payments
		WHERE owner_id = $1
		ORDER BY date, created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.CustomerID, &p.Date, &p.Amount,
			&p.Method, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *pgLedgerSource) ListCustomers(ctx context.Context, ownerID uuid.UUID) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, name, email, phone, address, current_balance, is_active, created_at
		FROM customers
		WHERE owner_id = $1 AND is_active = true
		ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
