package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// FuelLogInput holds the fields to record a fuel purchase.
type FuelLogInput struct {
	Date     time.Time
	Vehicle  string
	Litres   string
	Cost     string
	Odometer *int
}

// FuelMonthSummary is the aggregated fuel spend for one calendar month.
type FuelMonthSummary struct {
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	TotalLitres decimal.Decimal `json:"total_litres"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// FuelService records vehicle fuel purchases, scoped to an owner.
type FuelService interface {
	CreateFuelLog(ctx context.Context, ownerID uuid.UUID, input FuelLogInput) (*FuelLog, error)
	GetFuelLogs(ctx context.Context, ownerID uuid.UUID, vehicle *string) ([]FuelLog, error)
	DeleteFuelLog(ctx context.Context, ownerID, logID uuid.UUID) error

	// GetMonthlySummary aggregates litres and cost per calendar month,
	// newest first.
	GetMonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]FuelMonthSummary, error)
}

type fuelService struct {
	pool *pgxpool.Pool
}

// NewFuelService constructs a FuelService backed by PostgreSQL.
func NewFuelService(pool *pgxpool.Pool) FuelService {
	return &fuelService{pool: pool}
}

func (s *fuelService) CreateFuelLog(ctx context.Context, ownerID uuid.UUID, input FuelLogInput) (*FuelLog, error) {
	if input.Vehicle == "" {
		return nil, errors.New("vehicle is required")
	}
	litres, err := parsePositiveDecimal(input.Litres)
	if err != nil {
		return nil, fmt.Errorf("litres: %w", err)
	}
	cost, err := parsePositiveDecimal(input.Cost)
	if err != nil {
		return nil, fmt.Errorf("cost: %w", err)
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	fl := &FuelLog{}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO fuel_logs (id, owner_id, date, vehicle, litres, cost, odometer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, owner_id, date, vehicle, litres, cost, odometer, created_at`,
		uuid.New(), ownerID, input.Date, input.Vehicle, litres, cost, input.Odometer,
	).Scan(&fl.ID, &fl.OwnerID, &fl.Date, &fl.Vehicle, &fl.Litres, &fl.Cost, &fl.Odometer, &fl.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create fuel log: %w", err)
	}
	return fl, nil
}

func (s *fuelService) GetFuelLogs(ctx context.Context, ownerID uuid.UUID, vehicle *string) ([]FuelLog, error) {
	q := `
		SELECT id, owner_id, date, vehicle, litres, cost, odometer, created_at
		FROM fuel_logs
		WHERE owner_id = $1`
	args := []any{ownerID}
	if vehicle != nil {
		args = append(args, *vehicle)
		q += fmt.Sprintf(" AND vehicle = $%d", len(args))
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get fuel logs: %w", err)
	}
	defer rows.Close()

	var logs []FuelLog
	for rows.Next() {
		var fl FuelLog
		if err := rows.Scan(&fl.ID, &fl.OwnerID, &fl.Date, &fl.Vehicle, &fl.Litres,
			&fl.Cost, &fl.Odometer, &fl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fuel log: %w", err)
		}
		logs = append(logs, fl)
	}
	return logs, rows.Err()
}

func (s *fuelService) DeleteFuelLog(ctx context.Context, ownerID, logID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM fuel_logs WHERE owner_id = $1 AND id = $2",
		ownerID, logID,
	)
	if err != nil {
		return fmt.Errorf("delete fuel log %s: %w", logID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("fuel log %s not found: %w", logID, ErrNotFound)
	}
	return nil
}

func (s *fuelService) GetMonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]FuelMonthSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int,
		       SUM(litres), SUM(cost)
		FROM fuel_logs
		WHERE owner_id = $1
		GROUP BY 1, 2
		ORDER BY 1 DESC, 2 DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("fuel monthly summary: %w", err)
	}
	defer rows.Close()

	var summaries []FuelMonthSummary
	for rows.Next() {
		var sum FuelMonthSummary
		var month int
		if err := rows.Scan(&sum.Year, &month, &sum.TotalLitres, &sum.TotalCost); err != nil {
			return nil, fmt.Errorf("scan fuel summary: %w", err)
		}
		sum.Month = time.Month(month)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
