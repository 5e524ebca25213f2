package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocKind distinguishes invoices from quotes. Both live in the invoices
// table; only real invoices ever reach a client statement.
type DocKind string

const (
	DocKindInvoice DocKind = "invoice"
	DocKindQuote   DocKind = "quote"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	// Quote-only statuses.
	InvoiceStatusAccepted InvoiceStatus = "accepted"
	InvoiceStatusDeclined InvoiceStatus = "declined"
)

// Customer is a client record. CurrentBalance is a display cache maintained
// by the invoice and payment services; statements always recompute the true
// balance from the transaction log.
type Customer struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	Name           string          `json:"name"`
	Email          *string         `json:"email,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Address        *string         `json:"address,omitempty"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Invoice struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	DocKind    DocKind         `json:"doc_kind"`
	Number     string          `json:"number"`
	Date       time.Time       `json:"date"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Status     InvoiceStatus   `json:"status"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []InvoiceItem   `json:"items,omitempty"`
}

type InvoiceItem struct {
	ID             uuid.UUID       `json:"id"`
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// Payment is money received from a customer. Payments carry no status:
// every payment participates in statements up to the cutoff date.
type Payment struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Method     *string         `json:"method,omitempty"`
	Reference  *string         `json:"reference,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Supplier struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SupplierPayment struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  *string         `json:"reference,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Staff struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	FullName   string          `json:"full_name"`
	Position   *string         `json:"position,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
}

type StockItem struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	ReorderLevel   int             `json:"reorder_level"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	CreatedAt      time.Time       `json:"created_at"`
}

type WorkflowStatus string

const (
	WorkflowStatusPending    WorkflowStatus = "pending"
	WorkflowStatusInProgress WorkflowStatus = "in_progress"
	WorkflowStatusCompleted  WorkflowStatus = "completed"
	WorkflowStatusCancelled  WorkflowStatus = "cancelled"
)

// Workflow is a tracked job, optionally linked to a customer.
type Workflow struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	CustomerID  *uuid.UUID     `json:"customer_id,omitempty"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Status      WorkflowStatus `json:"status"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type FuelLog struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Date      time.Time       `json:"date"`
	Vehicle   string          `json:"vehicle"`
	Litres    decimal.Decimal `json:"litres"`
	Cost      decimal.Decimal `json:"cost"`
	Odometer  *int            `json:"odometer,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// User is an authenticated business owner. Every record in the system is
// scoped to exactly one owner.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BusinessName string    `json:"business_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
