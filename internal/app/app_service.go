package app

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/ai"
	"backoffice/internal/core"
	"backoffice/internal/export"

	"github.com/google/uuid"
)

type appService struct {
	users      core.UserService
	customers  core.CustomerService
	invoices   core.InvoiceService
	payments   core.PaymentService
	suppliers  core.SupplierService
	staff      core.StaffService
	stock      core.StockService
	workflows  core.WorkflowService
	fuel       core.FuelService
	statements core.StatementService
	extractor  ai.Extractor

	currencySymbol string
}

// NewAppService constructs an appService that satisfies ApplicationService.
// The extractor may be nil when no API key is configured; extraction calls
// then fail with a clear error instead of at startup.
func NewAppService(
	users core.UserService,
	customers core.CustomerService,
	invoices core.InvoiceService,
	payments core.PaymentService,
	suppliers core.SupplierService,
	staff core.StaffService,
	stock core.StockService,
	workflows core.WorkflowService,
	fuel core.FuelService,
	statements core.StatementService,
	extractor ai.Extractor,
	currencySymbol string,
) ApplicationService {
	return &appService{
		users:          users,
		customers:      customers,
		invoices:       invoices,
		payments:       payments,
		suppliers:      suppliers,
		staff:          staff,
		stock:          stock,
		workflows:      workflows,
		fuel:           fuel,
		statements:     statements,
		extractor:      extractor,
		currencySymbol: currencySymbol,
	}
}

// AuthenticateUser verifies credentials against the stored bcrypt hash.
// It returns the same error for an unknown email and a wrong password so
// the response does not reveal which accounts exist.
func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !core.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &UserSession{UserID: user.ID, Email: user.Email, BusinessName: user.BusinessName}, nil
}

// ── Customers ─────────────────────────────────────────────────────────────────

func (s *appService) ListCustomers(ctx context.Context, ownerID uuid.UUID) ([]core.Customer, error) {
	return s.customers.GetCustomers(ctx, ownerID)
}

func (s *appService) CreateCustomer(ctx context.Context, ownerID uuid.UUID, input core.CustomerInput) (*core.Customer, error) {
	return s.customers.CreateCustomer(ctx, ownerID, input)
}

func (s *appService) GetCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (*core.Customer, error) {
	return s.customers.GetCustomer(ctx, ownerID, customerID)
}

func (s *appService) UpdateCustomer(ctx context.Context, ownerID, customerID uuid.UUID, input core.CustomerInput) (*core.Customer, error) {
	return s.customers.UpdateCustomer(ctx, ownerID, customerID, input)
}

func (s *appService) DeleteCustomer(ctx context.Context, ownerID, customerID uuid.UUID) error {
	return s.customers.DeleteCustomer(ctx, ownerID, customerID)
}

// RecomputeCustomerBalance rebuilds the cached balance from invoices and
// payments, then returns the customer with the fresh value.
func (s *appService) RecomputeCustomerBalance(ctx context.Context, ownerID, customerID uuid.UUID) (*core.Customer, error) {
	if _, err := s.customers.RecomputeBalance(ctx, ownerID, customerID); err != nil {
		return nil, err
	}
	return s.customers.GetCustomer(ctx, ownerID, customerID)
}

// ── Invoices and quotes ───────────────────────────────────────────────────────

func (s *appService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, input core.InvoiceInput) (*core.Invoice, error) {
	return s.invoices.CreateInvoice(ctx, ownerID, input)
}

func (s *appService) ListInvoices(ctx context.Context, ownerID uuid.UUID, kind core.DocKind, status *core.InvoiceStatus) ([]core.Invoice, error) {
	return s.invoices.GetInvoices(ctx, ownerID, kind, status)
}

func (s *appService) GetInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*core.Invoice, error) {
	return s.invoices.GetInvoice(ctx, ownerID, invoiceID)
}

func (s *appService) UpdateInvoiceStatus(ctx context.Context, ownerID, invoiceID uuid.UUID, status core.InvoiceStatus) (*core.Invoice, error) {
	return s.invoices.UpdateStatus(ctx, ownerID, invoiceID, status)
}

func (s *appService) DeleteInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	return s.invoices.DeleteInvoice(ctx, ownerID, invoiceID)
}

// InvoicePDF renders a printable invoice or quote with its line items.
func (s *appService) InvoicePDF(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]byte, error) {
	inv, err := s.invoices.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetCustomer(ctx, ownerID, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	return export.BuildInvoicePDF(inv, customer.Name, s.currencySymbol)
}

// ── Payments ──────────────────────────────────────────────────────────────────

func (s *appService) RecordPayment(ctx context.Context, ownerID uuid.UUID, input core.PaymentInput) (*core.Payment, error) {
	return s.payments.RecordPayment(ctx, ownerID, input)
}

func (s *appService) ListPayments(ctx context.Context, ownerID uuid.UUID, customerID *uuid.UUID) ([]core.Payment, error) {
	return s.payments.GetPayments(ctx, ownerID, customerID)
}

func (s *appService) DeletePayment(ctx context.Context, ownerID, paymentID uuid.UUID) error {
	return s.payments.DeletePayment(ctx, ownerID, paymentID)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (s *appService) ListSuppliers(ctx context.Context, ownerID uuid.UUID) ([]core.Supplier, error) {
	return s.suppliers.GetSuppliers(ctx, ownerID)
}

func (s *appService) CreateSupplier(ctx context.Context, ownerID uuid.UUID, input core.SupplierInput) (*core.Supplier, error) {
	return s.suppliers.CreateSupplier(ctx, ownerID, input)
}

func (s *appService) UpdateSupplier(ctx context.Context, ownerID, supplierID uuid.UUID, input core.SupplierInput) (*core.Supplier, error) {
	return s.suppliers.UpdateSupplier(ctx, ownerID, supplierID, input)
}

func (s *appService) DeleteSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) error {
	return s.suppliers.DeleteSupplier(ctx, ownerID, supplierID)
}

func (s *appService) RecordSupplierPayment(ctx context.Context, ownerID uuid.UUID, input core.SupplierPaymentInput) (*core.SupplierPayment, error) {
	return s.suppliers.RecordSupplierPayment(ctx, ownerID, input)
}

func (s *appService) ListSupplierPayments(ctx context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]core.SupplierPayment, error) {
	return s.suppliers.GetSupplierPayments(ctx, ownerID, supplierID)
}

func (s *appService) DeleteSupplierPayment(ctx context.Context, ownerID, paymentID uuid.UUID) error {
	return s.suppliers.DeleteSupplierPayment(ctx, ownerID, paymentID)
}

// ── Staff and payroll ─────────────────────────────────────────────────────────

func (s *appService) ListStaff(ctx context.Context, ownerID uuid.UUID) ([]core.Staff, error) {
	return s.staff.GetStaff(ctx, ownerID)
}

func (s *appService) CreateStaff(ctx context.Context, ownerID uuid.UUID, input core.StaffInput) (*core.Staff, error) {
	return s.staff.CreateStaff(ctx, ownerID, input)
}

func (s *appService) UpdateStaff(ctx context.Context, ownerID, staffID uuid.UUID, input core.StaffInput) (*core.Staff, error) {
	return s.staff.UpdateStaff(ctx, ownerID, staffID, input)
}

func (s *appService) DeleteStaff(ctx context.Context, ownerID, staffID uuid.UUID) error {
	return s.staff.DeleteStaff(ctx, ownerID, staffID)
}

func (s *appService) GeneratePayslip(ctx context.Context, ownerID uuid.UUID, req core.PayslipRequest) (*core.Payslip, error) {
	return s.staff.GeneratePayslip(ctx, ownerID, req)
}

// PayslipPDF computes a payslip and renders it for printing.
func (s *appService) PayslipPDF(ctx context.Context, ownerID uuid.UUID, req core.PayslipRequest) ([]byte, error) {
	slip, err := s.staff.GeneratePayslip(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	return export.BuildPayslipPDF(slip, s.currencySymbol)
}

// ── Stock ─────────────────────────────────────────────────────────────────────

func (s *appService) ListStockItems(ctx context.Context, ownerID uuid.UUID) ([]core.StockItem, error) {
	return s.stock.GetStockItems(ctx, ownerID)
}

func (s *appService) CreateStockItem(ctx context.Context, ownerID uuid.UUID, input core.StockItemInput) (*core.StockItem, error) {
	return s.stock.CreateStockItem(ctx, ownerID, input)
}

func (s *appService) UpdateStockItem(ctx context.Context, ownerID, itemID uuid.UUID, input core.StockItemInput) (*core.StockItem, error) {
	return s.stock.UpdateStockItem(ctx, ownerID, itemID, input)
}

func (s *appService) AdjustStock(ctx context.Context, ownerID, itemID uuid.UUID, delta int) (*core.StockItem, error) {
	return s.stock.AdjustQuantity(ctx, ownerID, itemID, delta)
}

func (s *appService) DeleteStockItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	return s.stock.DeleteStockItem(ctx, ownerID, itemID)
}

func (s *appService) ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]core.StockItem, error) {
	return s.stock.GetLowStock(ctx, ownerID)
}

// ── Workflows ─────────────────────────────────────────────────────────────────

func (s *appService) ListWorkflows(ctx context.Context, ownerID uuid.UUID, status *core.WorkflowStatus) ([]core.Workflow, error) {
	return s.workflows.GetWorkflows(ctx, ownerID, status)
}

func (s *appService) CreateWorkflow(ctx context.Context, ownerID uuid.UUID, input core.WorkflowInput) (*core.Workflow, error) {
	return s.workflows.CreateWorkflow(ctx, ownerID, input)
}

func (s *appService) UpdateWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID, input core.WorkflowInput) (*core.Workflow, error) {
	return s.workflows.UpdateWorkflow(ctx, ownerID, workflowID, input)
}

func (s *appService) TransitionWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID, status core.WorkflowStatus) (*core.Workflow, error) {
	return s.workflows.TransitionStatus(ctx, ownerID, workflowID, status)
}

func (s *appService) DeleteWorkflow(ctx context.Context, ownerID, workflowID uuid.UUID) error {
	return s.workflows.DeleteWorkflow(ctx, ownerID, workflowID)
}

// ── Fuel logs ─────────────────────────────────────────────────────────────────

func (s *appService) ListFuelLogs(ctx context.Context, ownerID uuid.UUID, vehicle *string) ([]core.FuelLog, error) {
	return s.fuel.GetFuelLogs(ctx, ownerID, vehicle)
}

func (s *appService) CreateFuelLog(ctx context.Context, ownerID uuid.UUID, input core.FuelLogInput) (*core.FuelLog, error) {
	return s.fuel.CreateFuelLog(ctx, ownerID, input)
}

func (s *appService) DeleteFuelLog(ctx context.Context, ownerID, logID uuid.UUID) error {
	return s.fuel.DeleteFuelLog(ctx, ownerID, logID)
}

func (s *appService) FuelMonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]core.FuelMonthSummary, error) {
	return s.fuel.GetMonthlySummary(ctx, ownerID)
}

// ── Statements and dashboard ──────────────────────────────────────────────────

func (s *appService) GetStatement(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) (*core.Statement, error) {
	return s.statements.GenerateStatement(ctx, ownerID, customerID, cutoff)
}

func (s *appService) StatementPDF(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) ([]byte, error) {
	stmt, err := s.statements.GenerateStatement(ctx, ownerID, customerID, cutoff)
	if err != nil {
		return nil, err
	}
	return export.BuildStatementPDF(stmt, s.currencySymbol)
}

func (s *appService) StatementXLSX(ctx context.Context, ownerID, customerID uuid.UUID, cutoff time.Time) ([]byte, error) {
	stmt, err := s.statements.GenerateStatement(ctx, ownerID, customerID, cutoff)
	if err != nil {
		return nil, err
	}
	return export.BuildStatementXLSX(stmt)
}

func (s *appService) GetDashboard(ctx context.Context, ownerID uuid.UUID) (*core.DashboardSummary, error) {
	return s.statements.GetDashboard(ctx, ownerID)
}

// ── Document extraction ───────────────────────────────────────────────────────

func (s *appService) ExtractInvoiceDraft(ctx context.Context, documentText string) (*ai.ExtractedInvoice, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("document extraction is not configured: missing OpenAI API key")
	}
	return s.extractor.ExtractInvoice(ctx, documentText)
}
