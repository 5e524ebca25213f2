package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CustomerInput holds the fields required to create or update a customer.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerService provides client master data operations, scoped to an owner.
type CustomerService interface {
	CreateCustomer(ctx context.Context, ownerID uuid.UUID, input CustomerInput) (*Customer, error)
	GetCustomers(ctx context.Context, ownerID uuid.UUID) ([]Customer, error)
	GetCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, ownerID, customerID uuid.UUID, input CustomerInput) (*Customer, error)
	DeleteCustomer(ctx context.Context, ownerID, customerID uuid.UUID) error

	// RecomputeBalance rebuilds the cached current_balance from the
	// transaction log (non-draft, non-cancelled invoices minus payments)
	// and returns the fresh value.
	RecomputeBalance(ctx context.Context, ownerID, customerID uuid.UUID) (decimal.Decimal, error)
}

type customerService struct {
	pool *pgxpool.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

const customerColumns = "id, owner_id, name, email, phone, address, current_balance, is_active, created_at"

func scanCustomer(row pgx.Row) (*Customer, error) {
	c := &Customer{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.CurrentBalance, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func toPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *customerService) CreateCustomer(ctx context.Context, ownerID uuid.UUID, input CustomerInput) (*Customer, error) {
	if input.Name == "" {
		return nil, errors.New("customer name is required")
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO customers (id, owner_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+customerColumns,
		uuid.New(), ownerID, input.Name, toPtr(input.Email), toPtr(input.Phone), toPtr(input.Address),
	)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("create customer %q: %w", input.Name, err)
	}
	return c, nil
}

func (s *customerService) GetCustomers(ctx context.Context, ownerID uuid.UUID) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE owner_id = $1 AND is_active = true
		ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("get customers: %w", err)
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

func (s *customerService) GetCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (*Customer, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE owner_id = $1 AND id = $2`,
		ownerID, customerID,
	)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %s not found: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	return c, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, ownerID, customerID uuid.UUID, input CustomerInput) (*Customer, error) {
	if input.Name == "" {
		return nil, errors.New("customer name is required")
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $3, email = $4, phone = $5, address = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING `+customerColumns,
		ownerID, customerID, input.Name, toPtr(input.Email), toPtr(input.Phone), toPtr(input.Address),
	)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %s not found: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("update customer %s: %w", customerID, err)
	}
	return c, nil
}

// DeleteCustomer soft-deletes so historical invoices keep a valid reference.
func (s *customerService) DeleteCustomer(ctx context.Context, ownerID, customerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE customers SET is_active = false
		WHERE owner_id = $1 AND id = $2`,
		ownerID, customerID,
	)
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found: %w", customerID, ErrNotFound)
	}
	return nil
}

func (s *customerService) RecomputeBalance(ctx context.Context, ownerID, customerID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.pool.QueryRow(ctx, `
		UPDATE customers c
		SET current_balance = COALESCE((
			SELECT SUM(i.total) FROM invoices i
			WHERE i.owner_id = c.owner_id AND i.customer_id = c.id
			  AND i.doc_kind = 'invoice'
			  AND i.status NOT IN ('draft', 'cancelled')
		), 0) - COALESCE((
			SELECT SUM(p.amount) FROM payments p
			WHERE p.owner_id = c.owner_id AND p.customer_id = c.id
		), 0)
		WHERE c.owner_id = $1 AND c.id = $2
		RETURNING c.current_balance`,
		ownerID, customerID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("customer %s not found: %w", customerID, ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("recompute balance for %s: %w", customerID, err)
	}
	return balance, nil
}
