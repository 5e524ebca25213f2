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

// StaffInput holds the fields to create or update a staff member.
type StaffInput struct {
	FullName   string
	Position   string
	BaseSalary string
	HourlyRate string
}

// PayslipRequest describes one payroll run for one staff member.
type PayslipRequest struct {
	StaffID       uuid.UUID
	PeriodStart   time.Time
	PeriodEnd     time.Time
	OvertimeHours string
	Deductions    []PayslipDeduction
}

// StaffService provides staff master data and payslip generation, scoped to
// an owner. Payslips are computed on demand and not persisted.
type StaffService interface {
	CreateStaff(ctx context.Context, ownerID uuid.UUID, input StaffInput) (*Staff, error)
	GetStaff(ctx context.Context, ownerID uuid.UUID) ([]Staff, error)
	GetStaffMember(ctx context.Context, ownerID, staffID uuid.UUID) (*Staff, error)
	UpdateStaff(ctx context.Context, ownerID, staffID uuid.UUID, input StaffInput) (*Staff, error)
	DeleteStaff(ctx context.Context, ownerID, staffID uuid.UUID) error

	GeneratePayslip(ctx context.Context, ownerID uuid.UUID, req PayslipRequest) (*Payslip, error)
}

type staffService struct {
	pool *pgxpool.Pool
}

// NewStaffService constructs a StaffService backed by PostgreSQL.
func NewStaffService(pool *pgxpool.Pool) StaffService {
	return &staffService{pool: pool}
}

const staffColumns = "id, owner_id, full_name, position, base_salary, hourly_rate, is_active, created_at"

func scanStaff(row pgx.Row) (*Staff, error) {
	st := &Staff{}
	err := row.Scan(&st.ID, &st.OwnerID, &st.FullName, &st.Position, &st.BaseSalary,
		&st.HourlyRate, &st.IsActive, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *staffService) CreateStaff(ctx context.Context, ownerID uuid.UUID, input StaffInput) (*Staff, error) {
	if input.FullName == "" {
		return nil, errors.New("staff name is required")
	}
	baseSalary, err := parseNonNegativeDecimal(input.BaseSalary)
	if err != nil {
		return nil, fmt.Errorf("base salary: %w", err)
	}
	hourlyRate, err := parseNonNegativeDecimal(input.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("hourly rate: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO staff (id, owner_id, full_name, position, base_salary, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+staffColumns,
		uuid.New(), ownerID, input.FullName, toPtr(input.Position), baseSalary, hourlyRate,
	)
	st, err := scanStaff(row)
	if err != nil {
		return nil, fmt.Errorf("create staff %q: %w", input.FullName, err)
	}
	return st, nil
}

func (s *staffService) GetStaff(ctx context.Context, ownerID uuid.UUID) ([]Staff, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE owner_id = $1 AND is_active = true
		ORDER BY full_name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	defer rows.Close()

	var members []Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		members = append(members, *st)
	}
	return members, rows.Err()
}

func (s *staffService) GetStaffMember(ctx context.Context, ownerID, staffID uuid.UUID) (*Staff, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE owner_id = $1 AND id = $2`,
		ownerID, staffID,
	)
	st, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("staff member %s not found: %w", staffID, ErrNotFound)
		}
		return nil, fmt.Errorf("get staff member %s: %w", staffID, err)
	}
	return st, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, ownerID, staffID uuid.UUID, input StaffInput) (*Staff, error) {
	if input.FullName == "" {
		return nil, errors.New("staff name is required")
	}
	baseSalary, err := parseNonNegativeDecimal(input.BaseSalary)
	if err != nil {
		return nil, fmt.Errorf("base salary: %w", err)
	}
	hourlyRate, err := parseNonNegativeDecimal(input.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("hourly rate: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE staff
		SET full_name = $3, position = $4, base_salary = $5, hourly_rate = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING `+staffColumns,
		ownerID, staffID, input.FullName, toPtr(input.Position), baseSalary, hourlyRate,
	)
	st, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("staff member %s not found: %w", staffID, ErrNotFound)
		}
		return nil, fmt.Errorf("update staff member %s: %w", staffID, err)
	}
	return st, nil
}

func (s *staffService) DeleteStaff(ctx context.Context, ownerID, staffID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE staff SET is_active = false
		WHERE owner_id = $1 AND id = $2`,
		ownerID, staffID,
	)
	if err != nil {
		return fmt.Errorf("delete staff member %s: %w", staffID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("staff member %s not found: %w", staffID, ErrNotFound)
	}
	return nil
}

func (s *staffService) GeneratePayslip(ctx context.Context, ownerID uuid.UUID, req PayslipRequest) (*Payslip, error) {
	st, err := s.GetStaffMember(ctx, ownerID, req.StaffID)
	if err != nil {
		return nil, err
	}

	overtime := decimal.Zero
	if req.OvertimeHours != "" {
		if overtime, err = parseNonNegativeDecimal(req.OvertimeHours); err != nil {
			return nil, fmt.Errorf("overtime hours: %w", err)
		}
	}
	for _, d := range req.Deductions {
		if d.Amount.IsNegative() {
			return nil, fmt.Errorf("deduction %q cannot be negative", d.Label)
		}
	}

	slip := ComputePayslip(*st, req.PeriodStart, req.PeriodEnd, overtime, req.Deductions)
	return &slip, nil
}
