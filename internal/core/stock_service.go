package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockItemInput holds the fields to create or update a stock item.
type StockItemInput struct {
	SKU            string
	Name           string
	QuantityOnHand int
	ReorderLevel   int
	UnitPrice      string
}

// StockService provides stock item operations, scoped to an owner.
type StockService interface {
	CreateStockItem(ctx context.Context, ownerID uuid.UUID, input StockItemInput) (*StockItem, error)
	GetStockItems(ctx context.Context, ownerID uuid.UUID) ([]StockItem, error)
	UpdateStockItem(ctx context.Context, ownerID, itemID uuid.UUID, input StockItemInput) (*StockItem, error)
	DeleteStockItem(ctx context.Context, ownerID, itemID uuid.UUID) error

	// AdjustQuantity applies a signed delta to quantity on hand; the result
	// may not go below zero.
	AdjustQuantity(ctx context.Context, ownerID, itemID uuid.UUID, delta int) (*StockItem, error)

	// GetLowStock returns items at or below their reorder level.
	GetLowStock(ctx context.Context, ownerID uuid.UUID) ([]StockItem, error)
}

type stockService struct {
	pool *pgxpool.Pool
}

// NewStockService constructs a StockService backed by PostgreSQL.
func NewStockService(pool *pgxpool.Pool) StockService {
	return &stockService{pool: pool}
}

const stockColumns = "id, owner_id, sku, name, quantity_on_hand, reorder_level, unit_price, created_at"

func scanStockItem(row pgx.Row) (*StockItem, error) {
	it := &StockItem{}
	err := row.Scan(&it.ID, &it.OwnerID, &it.SKU, &it.Name, &it.QuantityOnHand,
		&it.ReorderLevel, &it.UnitPrice, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *stockService) CreateStockItem(ctx context.Context, ownerID uuid.UUID, input StockItemInput) (*StockItem, error) {
	if input.Name == "" {
		return nil, errors.New("stock item name is required")
	}
	if input.QuantityOnHand < 0 {
		return nil, errors.New("quantity on hand cannot be negative")
	}
	unitPrice, err := parseNonNegativeDecimal(input.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("unit price: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO stock_items (id, owner_id, sku, name, quantity_on_hand, reorder_level, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+stockColumns,
		uuid.New(), ownerID, input.SKU, input.Name, input.QuantityOnHand, input.ReorderLevel, unitPrice,
	)
	it, err := scanStockItem(row)
	if err != nil {
		return nil, fmt.Errorf("create stock item %q: %w", input.Name, err)
	}
	return it, nil
}

func (s *stockService) GetStockItems(ctx context.Context, ownerID uuid.UUID) ([]StockItem, error) {
	return s.queryItems(ctx, `
		SELECT `+stockColumns+`
		FROM stock_items
		WHERE owner_id = $1
		ORDER BY name`, ownerID)
}

func (s *stockService) GetLowStock(ctx context.Context, ownerID uuid.UUID) ([]StockItem, error) {
	return s.queryItems(ctx, `
		SELECT `+stockColumns+`
		FROM stock_items
		WHERE owner_id = $1 AND quantity_on_hand <= reorder_level
		ORDER BY name`, ownerID)
}

func (s *stockService) queryItems(ctx context.Context, q string, ownerID uuid.UUID) ([]StockItem, error) {
	rows, err := s.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get stock items: %w", err)
	}
	defer rows.Close()

	var items []StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *stockService) UpdateStockItem(ctx context.Context, ownerID, itemID uuid.UUID, input StockItemInput) (*StockItem, error) {
	if input.Name == "" {
		return nil, errors.New("stock item name is required")
	}
	if input.QuantityOnHand < 0 {
		return nil, errors.New("quantity on hand cannot be negative")
	}
	unitPrice, err := parseNonNegativeDecimal(input.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("unit price: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE stock_items
		SET sku = $3, name = $4, quantity_on_hand = $5, reorder_level = $6, unit_price = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING `+stockColumns,
		ownerID, itemID, input.SKU, input.Name, input.QuantityOnHand, input.ReorderLevel, unitPrice,
	)
	it, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stock item %s not found: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("update stock item %s: %w", itemID, err)
	}
	return it, nil
}

func (s *stockService) AdjustQuantity(ctx context.Context, ownerID, itemID uuid.UUID, delta int) (*StockItem, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE stock_items
		SET quantity_on_hand = quantity_on_hand + $3
		WHERE owner_id = $1 AND id = $2 AND quantity_on_hand + $3 >= 0
		RETURNING `+stockColumns,
		ownerID, itemID, delta,
	)
	it, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stock item %s not found or adjustment would go negative", itemID)
		}
		return nil, fmt.Errorf("adjust stock item %s: %w", itemID, err)
	}
	return it, nil
}

func (s *stockService) DeleteStockItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM stock_items WHERE owner_id = $1 AND id = $2",
		ownerID, itemID,
	)
	if err != nil {
		return fmt.Errorf("delete stock item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock item %s not found: %w", itemID, ErrNotFound)
	}
	return nil
}
