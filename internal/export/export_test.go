package export_test

import (
	"bytes"
	"testing"
	"time"

	"backoffice/internal/core"
	"backoffice/internal/export"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func sampleStatement() *core.Statement {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("1000.00")
	return &core.Statement{
		CustomerID:   uuid.New(),
		CustomerName: "Acme Ltd",
		CutoffDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Lines: []core.StatementLine{
			{
				Txn:     core.Txn{Date: d, Kind: core.TxnInvoice, Reference: "INV-001", Amount: amount},
				Balance: amount,
			},
		},
		ClosingBalance: amount,
	}
}

func TestBuildStatementPDF(t *testing.T) {
	data, err := export.BuildStatementPDF(sampleStatement(), "R")
	if err != nil {
		t.Fatalf("BuildStatementPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestBuildStatementXLSX(t *testing.T) {
	data, err := export.BuildStatementXLSX(sampleStatement())
	if err != nil {
		t.Fatalf("BuildStatementXLSX: %v", err)
	}
	// XLSX is a zip archive.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output is not an XLSX workbook")
	}
}

func TestBuildPayslipPDF(t *testing.T) {
	slip := &core.Payslip{
		StaffID:     uuid.New(),
		StaffName:   "J Smith",
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		BasePay:     decimal.RequireFromString("2000.00"),
		GrossPay:    decimal.RequireFromString("2000.00"),
		NetPay:      decimal.RequireFromString("1700.00"),
		Deductions: []core.PayslipDeduction{
			{Label: "Tax", Amount: decimal.RequireFromString("300.00")},
		},
		TotalDeductions: decimal.RequireFromString("300.00"),
	}
	data, err := export.BuildPayslipPDF(slip, "R")
	if err != nil {
		t.Fatalf("BuildPayslipPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}
