package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SupplierInput holds the fields to create or update a supplier.
type SupplierInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// SupplierPaymentInput holds the fields to record a payment made to a supplier.
type SupplierPaymentInput struct {
	SupplierID uuid.UUID
	Date       time.Time
	Amount     string
	Reference  string
}

// SupplierService provides supplier master data and supplier payment
// operations, scoped to an owner. Suppliers carry no balance cache.
type SupplierService interface {
	CreateSupplier(ctx context.Context, ownerID uuid.UUID, input SupplierInput) (*Supplier, error)
	GetSuppliers(ctx context.Context, ownerID uuid.UUID) ([]Supplier, error)
	GetSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) (*Supplier, error)
	UpdateSupplier(ctx context.Context, ownerID, supplierID uuid.UUID, input SupplierInput) (*Supplier, error)
	DeleteSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) error

	RecordSupplierPayment(ctx context.Context, ownerID uuid.UUID, input SupplierPaymentInput) (*SupplierPayment, error)
	GetSupplierPayments(ctx context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]SupplierPayment, error)
	DeleteSupplierPayment(ctx context.Context, ownerID, paymentID uuid.UUID) error
}

type supplierService struct {
	pool *pgxpool.Pool
}

// NewSupplierService constructs a SupplierService backed by PostgreSQL.
func NewSupplierService(pool *pgxpool.Pool) SupplierService {
	return &supplierService{pool: pool}
}

const supplierColumns = "id, owner_id, name, email, phone, address, is_active, created_at"

func scanSupplier(row pgx.Row) (*Supplier, error) {
	s := &Supplier{}
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, ownerID uuid.UUID, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, errors.New("supplier name is required")
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (id, owner_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+supplierColumns,
		uuid.New(), ownerID, input.Name, toPtr(input.Email), toPtr(input.Phone), toPtr(input.Address),
	)
	sup, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", input.Name, err)
	}
	return sup, nil
}

func (s *supplierService) GetSuppliers(ctx context.Context, ownerID uuid.UUID) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE owner_id = $1 AND is_active = true
		ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("get suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, *sup)
	}
	return suppliers, rows.Err()
}

func (s *supplierService) GetSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) (*Supplier, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE owner_id = $1 AND id = $2`,
		ownerID, supplierID,
	)
	sup, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %s not found: %w", supplierID, ErrNotFound)
		}
		return nil, fmt.Errorf("get supplier %s: %w", supplierID, err)
	}
	return sup, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, ownerID, supplierID uuid.UUID, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, errors.New("supplier name is required")
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $3, email = $4, phone = $5, address = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING `+supplierColumns,
		ownerID, supplierID, input.Name, toPtr(input.Email), toPtr(input.Phone), toPtr(input.Address),
	)
	sup, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %s not found: %w", supplierID, ErrNotFound)
		}
		return nil, fmt.Errorf("update supplier %s: %w", supplierID, err)
	}
	return sup, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE suppliers SET is_active = false
		WHERE owner_id = $1 AND id = $2`,
		ownerID, supplierID,
	)
	if err != nil {
		return fmt.Errorf("delete supplier %s: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %s not found: %w", supplierID, ErrNotFound)
	}
	return nil
}

func (s *supplierService) RecordSupplierPayment(ctx context.Context, ownerID uuid.UUID, input SupplierPaymentInput) (*SupplierPayment, error) {
	amount, err := parsePositiveDecimal(input.Amount)
	if err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	p := &SupplierPayment{}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO supplier_payments (id, owner_id, supplier_id, date, amount, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, supplier_id, date, amount, reference, created_at`,
		uuid.New(), ownerID, input.SupplierID, input.Date, amount, toPtr(input.Reference),
	).Scan(&p.ID, &p.OwnerID, &p.SupplierID, &p.Date, &p.Amount, &p.Reference, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record supplier payment: %w", err)
	}
	return p, nil
}

func (s *supplierService) GetSupplierPayments(ctx context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]SupplierPayment, error) {
	q := `
		SELECT id, owner_id, supplier_id, date, amount, reference, created_at
		FROM supplier_payments
		WHERE owner_id = $1`
	args := []any{ownerID}
	if supplierID != nil {
		args = append(args, *supplierID)
		q += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get supplier payments: %w", err)
	}
	defer rows.Close()

	var payments []SupplierPayment
	for rows.Next() {
		var p SupplierPayment
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.SupplierID, &p.Date, &p.Amount, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *supplierService) DeleteSupplierPayment(ctx context.Context, ownerID, paymentID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM supplier_payments WHERE owner_id = $1 AND id = $2",
		ownerID, paymentID,
	)
	if err != nil {
		return fmt.Errorf("delete supplier payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier payment %s not found: %w", paymentID, ErrNotFound)
	}
	return nil
}
