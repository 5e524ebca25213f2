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

// PaymentInput holds the fields to record a customer payment.
type PaymentInput struct {
	CustomerID uuid.UUID
	Date       time.Time
	Amount     string
	Method     string
	Reference  string
}

// PaymentService records money received from customers. Recording or
// removing a payment adjusts the customer's cached balance in the same
// transaction.
type PaymentService interface {
	RecordPayment(ctx context.Context, ownerID uuid.UUID, input PaymentInput) (*Payment, error)
	GetPayments(ctx context.Context, ownerID uuid.UUID, customerID *uuid.UUID) ([]Payment, error)
	DeletePayment(ctx context.Context, ownerID, paymentID uuid.UUID) error
}

type paymentService struct {
	pool *pgxpool.Pool
}

// NewPaymentService constructs a PaymentService backed by PostgreSQL.
func NewPaymentService(pool *pgxpool.Pool) PaymentService {
	return &paymentService{pool: pool}
}

func (s *paymentService) RecordPayment(ctx context.Context, ownerID uuid.UUID, input PaymentInput) (*Payment, error) {
	amount, err := parsePositiveDecimal(input.Amount)
	if err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p := &Payment{}
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (id, owner_id, customer_id, date, amount, method, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, owner_id, customer_id, date, amount, method, reference, created_at`,
		uuid.New(), ownerID, input.CustomerID, input.Date, amount, toPtr(input.Method), toPtr(input.Reference),
	).Scan(&p.ID, &p.OwnerID, &p.CustomerID, &p.Date, &p.Amount, &p.Method, &p.Reference, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if err := adjustCustomerBalance(ctx, tx, ownerID, input.CustomerID, amount.Neg()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}
	return p, nil
}

func (s *paymentService) GetPayments(ctx context.Context, ownerID uuid.UUID, customerID *uuid.UUID) ([]Payment, error) {
	q := `
		SELECT id, owner_id, customer_id, date, amount, method, reference, created_at
		FROM payments
		WHERE owner_id = $1`
	args := []any{ownerID}
	if customerID != nil {
		args = append(args, *customerID)
		q += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
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

func (s *paymentService) DeletePayment(ctx context.Context, ownerID, paymentID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID uuid.UUID
	var amount decimal.Decimal
	err = tx.QueryRow(ctx, `
		DELETE FROM payments
		WHERE owner_id = $1 AND id = $2
		RETURNING customer_id, amount`,
		ownerID, paymentID,
	).Scan(&customerID, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("payment %s not found: %w", paymentID, ErrNotFound)
		}
		return fmt.Errorf("delete payment %s: %w", paymentID, err)
	}

	if err := adjustCustomerBalance(ctx, tx, ownerID, customerID, amount); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}
