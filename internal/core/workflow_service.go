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

// WorkflowInput holds the fields to create or update a tracked job.
type WorkflowInput struct {
	CustomerID  *uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
}

// WorkflowService manages job tracking with a fixed status lifecycle:
// pending → in_progress → completed; cancel from any non-terminal state.
type WorkflowService interface {
	CreateWorkflow(ctx context.Context, ownerID uuid.UUID, input WorkflowInput) (*Workflow, error)
	GetWorkflows(ctx context.Context, ownerID uuid.UUID, status *WorkflowStatus) ([]Workflow, error)
	GetWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID) (*Workflow, error)
	UpdateWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID, input WorkflowInput) (*Workflow, error)
	TransitionStatus(ctx context.Context, ownerID, workflowID uuid.UUID, status WorkflowStatus) (*Workflow, error)
	DeleteWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID) error
}

type workflowService struct {
	pool *pgxpool.Pool
}

// NewWorkflowService constructs a WorkflowService backed by PostgreSQL.
func NewWorkflowService(pool *pgxpool.Pool) WorkflowService {
	return &workflowService{pool: pool}
}

// workflowTransitions lists the allowed next statuses for each status.
var workflowTransitions = map[WorkflowStatus][]WorkflowStatus{
	WorkflowStatusPending:    {WorkflowStatusInProgress, WorkflowStatusCancelled},
	WorkflowStatusInProgress: {WorkflowStatusCompleted, WorkflowStatusCancelled},
	WorkflowStatusCompleted:  {},
	WorkflowStatusCancelled:  {},
}

func transitionAllowed(from, to WorkflowStatus) bool {
	for _, s := range workflowTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

const workflowColumns = "id, owner_id, customer_id, title, description, status, due_date, created_at, updated_at"

func scanWorkflow(row pgx.Row) (*Workflow, error) {
	w := &Workflow{}
	err := row.Scan(&w.ID, &w.OwnerID, &w.CustomerID, &w.Title, &w.Description,
		&w.Status, &w.DueDate, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workflowService) CreateWorkflow(ctx context.Context, ownerID uuid.UUID, input WorkflowInput) (*Workflow, error) {
	if input.Title == "" {
		return nil, errors.New("workflow title is required")
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO workflows (id, owner_id, customer_id, title, description, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+workflowColumns,
		uuid.New(), ownerID, input.CustomerID, input.Title, toPtr(input.Description),
		WorkflowStatusPending, input.DueDate,
	)
	w, err := scanWorkflow(row)
	if err != nil {
		return nil, fmt.Errorf("create workflow %q: %w", input.Title, err)
	}
	return w, nil
}

func (s *workflowService) GetWorkflows(ctx context.Context, ownerID uuid.UUID, status *WorkflowStatus) ([]Workflow, error) {
	q := `
		SELECT ` + workflowColumns + `
		FROM workflows
		WHERE owner_id = $1`
	args := []any{ownerID}
	if status != nil {
		args = append(args, *status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get workflows: %w", err)
	}
	defer rows.Close()

	var workflows []Workflow
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		workflows = append(workflows, *w)
	}
	return workflows, rows.Err()
}

func (s *workflowService) GetWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID) (*Workflow, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+workflowColumns+`
		FROM workflows
		WHERE owner_id = $1 AND id = $2`,
		ownerID, workflowID,
	)
	w, err := scanWorkflow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workflow %s not found: %w", workflowID, ErrNotFound)
		}
		return nil, fmt.Errorf("get workflow %s: %w", workflowID, err)
	}
	return w, nil
}

func (s *workflowService) UpdateWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID, input WorkflowInput) (*Workflow, error) {
	if input.Title == "" {
		return nil, errors.New("workflow title is required")
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE workflows
		SET customer_id = $3, title = $4, description = $5, due_date = $6, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+workflowColumns,
		ownerID, workflowID, input.CustomerID, input.Title, toPtr(input.Description), input.DueDate,
	)
	w, err := scanWorkflow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workflow %s not found: %w", workflowID, ErrNotFound)
		}
		return nil, fmt.Errorf("update workflow %s: %w", workflowID, err)
	}
	return w, nil
}

func (s *workflowService) TransitionStatus(ctx context.Context, ownerID, workflowID uuid.UUID, status WorkflowStatus) (*Workflow, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current WorkflowStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM workflows
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE`,
		ownerID, workflowID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workflow %s not found: %w", workflowID, ErrNotFound)
		}
		return nil, fmt.Errorf("get workflow %s: %w", workflowID, err)
	}

	if !transitionAllowed(current, status) {
		return nil, fmt.Errorf("cannot transition workflow from %s to %s", current, status)
	}

	row := tx.QueryRow(ctx, `
		UPDATE workflows
		SET status = $3, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+workflowColumns,
		ownerID, workflowID, status,
	)
	w, err := scanWorkflow(row)
	if err != nil {
		return nil, fmt.Errorf("transition workflow %s: %w", workflowID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return w, nil
}

func (s *workflowService) DeleteWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM workflows WHERE owner_id = $1 AND id = $2",
		ownerID, workflowID,
	)
	if err != nil {
		return fmt.Errorf("delete workflow %s: %w", workflowID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workflow %s not found: %w", workflowID, ErrNotFound)
	}
	return nil
}
