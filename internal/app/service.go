package app

import (
	"context"
	"time"

	"backoffice/internal/ai"
	"backoffice/internal/core"

	"github.com/google/uuid"
)

// UserSession is the authenticated identity handed to the web adapter.
type UserSession struct {
	UserID       uuid.UUID
	Email        string
	BusinessName string
}

// ApplicationService is the single interface all adapters (web, CLI) call.
// It decouples presentation from business logic: implementations contain no
// display logic of any kind. Every method takes the owner ID explicitly.
type ApplicationService interface {
	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error)

	// ── Customers ──
	ListCustomers(ctx context.Context, ownerID uuid.UUID) ([]core.Customer, error)
	CreateCustomer(ctx context.Context, ownerID uuid.UUID, input core.CustomerInput) (*core.Customer, error)
	GetCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (*core.Customer, error)
	UpdateCustomer(ctx context.Context, ownerID, customerID uuid.UUID, input core.CustomerInput) (*core.Customer, error)
	DeleteCustomer(ctx context.Context, ownerID, customerID uuid.UUID) error
	// RecomputeCustomerBalance rebuilds the cached balance from the
	// transaction log and returns the refreshed customer.
	RecomputeCustomerBalance(ctx context.Context, ownerID, customerID uuid.UUID) (*core.Customer, error)

	// ── Invoices and quotes ──
	CreateInvoice(ctx context.Context, ownerID uuid.UUID, input core.InvoiceInput) (*core.Invoice, error)
	ListInvoices(ctx context.Context, ownerID uuid.UUID, kind core.DocKind, status *core.InvoiceStatus) ([]core.Invoice, error)
	GetInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*core.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, ownerID, invoiceID uuid.UUID, status core.InvoiceStatus) (*core.Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error
	// InvoicePDF renders a printable invoice or quote.
	InvoicePDF(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]byte, error)

	// ── Payments ──
	RecordPayment(ctx context.Context, ownerID uuid.UUID, input core.PaymentInput) (*core.Payment, error)
	ListPayments(ctx context.Context, ownerID uuid.UUID, customerID *uuid.UUID) ([]core.Payment, error)
	DeletePayment(ctx context.Context, ownerID, paymentID uuid.UUID) error

	// ── Suppliers ──
	ListSuppliers(ctx context.Context, ownerID uuid.UUID) ([]core.Supplier, error)
	CreateSupplier(ctx context.Context, ownerID uuid.UUID, input core.SupplierInput) (*core.Supplier, error)
	UpdateSupplier(ctx context.Context, ownerID, supplierID uuid.UUID, input core.SupplierInput) (*core.Supplier, error)
	DeleteSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) error
	RecordSupplierPayment(ctx context.Context, ownerID uuid.UUID, input core.SupplierPaymentInput) (*core.SupplierPayment, error)
	ListSupplierPayments(ctx context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]core.SupplierPayment, error)
	DeleteSupplierPayment(ctx context.Context, ownerID, paymentID uuid.UUID) error

	// ── Staff and payroll ──
	ListStaff(ctx context.Context, ownerID uuid.UUID) ([]core.Staff, error)
	CreateStaff(ctx context.Context, ownerID uuid.UUID, input core.StaffInput) (*core.Staff, error)
	UpdateStaff(ctx context.Context, ownerID, staffID uuid.UUID, input core.StaffInput) (*core.Staff, error)
	DeleteStaff(ctx context.Context, ownerID, staffID uuid.UUID) error
	GeneratePayslip(ctx context.Context, ownerID uuid.UUID, req core.PayslipRequest) (*core.Payslip, error)
	// PayslipPDF computes a payslip and renders it.
	PayslipPDF(ctx context.Context, ownerID uuid.UUID, req core.PayslipRequest) ([]byte, error)

	// ── Stock ──
	ListStockItems(ctx context.Context, ownerID uuid.UUID) ([]core.StockItem, error)
	CreateStockItem(ctx context.Context, ownerID uuid.UUID, input core.StockItemInput) (*core.StockItem, error)
	UpdateStockItem(ctx context.Context, ownerID, itemID uuid.UUID, input core.StockItemInput) (*core.StockItem, error)
	AdjustStock(ctx context.Context, ownerID, itemID uuid.UUID, delta int) (*core.StockItem, error)
	DeleteStockItem(ctx context.Context, ownerID, itemID uuid.UUID) error
	ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]core.StockItem, error)

	// ── Workflows ──
	ListWorkflows(ctx context.Context, ownerID uuid.UUID, status *core.WorkflowStatus) ([]core.Workflow, error)
	CreateWorkflow(ctx context.Context, ownerID uuid.UUID, input core.WorkflowInput) (*core.Workflow, error)
	UpdateWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID, input core.WorkflowInput) (*core.Workflow, error)
	TransitionWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID, status core.WorkflowStatus) (*core.Workflow, error)
	DeleteWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID) error

	// ── Fuel logs ──
	ListFuelLogs(ctx context.Context, ownerID uuid.UUID, vehicle *string) ([]core.FuelLog, error)
	CreateFuelLog(ctx context.Context, ownerID uuid.UUID, input core.FuelLogInput) (*core.FuelLog, error)
	DeleteFuelLog(ctx context.Context, ownerID, logID uuid.UUID) error
	FuelMonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]core.FuelMonthSummary, error)

	// ── Statements and dashboard ──
	// GetStatement recomputes the client ledger from source transactions.
	// A zero cutoff means "now".
	GetStatement(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) (*core.Statement, error)
	StatementPDF(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) ([]byte, error)
	StatementXLSX(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) ([]byte, error)
	GetDashboard(ctx context.Context, ownerID uuid.UUID) (*core.DashboardSummary, error)

	// ── Document extraction ──
	// ExtractInvoiceDraft runs AI extraction over pasted document text and
	// returns a draft for the user to review; nothing is persisted.
	ExtractInvoiceDraft(ctx context.Context, documentText string) (*ai.ExtractedInvoice, error)
}
