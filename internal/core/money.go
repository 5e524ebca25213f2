package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// parsePositiveDecimal parses a decimal string that must be strictly > 0.
func parsePositiveDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be > 0, got %s", s)
	}
	return d, nil
}

// parseNonNegativeDecimal parses a decimal string that must be >= 0.
// Empty strings parse as zero.
func parseNonNegativeDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative, got %s", s)
	}
	return d, nil
}

// adjustCustomerBalance applies a signed delta to the cached customer
// balance. Must run inside the same transaction as the invoice or payment
// mutation that causes it, so the cache cannot drift on rollback.
func adjustCustomerBalance(ctx context.Context, tx pgx.Tx, ownerID, customerID uuid.UUID, delta decimal.Decimal) error {
	tag, err := tx.Exec(ctx, `
		UPDATE customers
		SET current_balance = current_balance + $3
		WHERE owner_id = $1 AND id = $2`,
		ownerID, customerID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust balance for customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found for balance adjustment: %w", customerID, ErrNotFound)
	}
	return nil
}
