package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"backoffice/internal/core"
)

// money renders a decimal with the currency symbol and two decimal places.
// Rounding happens here and only here.
func money(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

// BuildStatementPDF renders a client statement as a PDF document.
func BuildStatementPDF(stmt *core.Statement, currencySymbol string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Client Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Client: %s", stmt.CustomerName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("As at: %s", stmt.CutoffDate.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Balance due: %s", money(currencySymbol, stmt.ClosingBalance)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Reference", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Balance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, line := range stmt.Lines {
		kind := "Invoice"
		if line.Kind == core.TxnPayment {
			kind = "Payment"
		}
		pdf.CellFormat(25, 6, line.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, kind, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, line.Reference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, money(currencySymbol, line.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, money(currencySymbol, line.Balance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildInvoicePDF renders an invoice or quote as a printable PDF.
func BuildInvoicePDF(inv *core.Invoice, customerName, currencySymbol string) ([]byte, error) {
	title := "Invoice"
	if inv.DocKind == core.DocKindQuote {
		title = "Quote"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("%s %s", title, inv.Number))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Client: %s", customerName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", inv.Date.Format("2006-01-02")))
	pdf.Ln(5)
	if inv.DueDate != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Due: %s", inv.DueDate.Format("2006-01-02")))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Unit Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Tax %", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Line Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(70, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, money(currencySymbol, item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, item.TaxRatePercent.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, money(currencySymbol, item.Quantity.Mul(item.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Subtotal: %s", money(currencySymbol, inv.Subtotal)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Tax: %s", money(currencySymbol, inv.TaxAmount)))
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %s", money(currencySymbol, inv.Total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPayslipPDF renders a payslip as a PDF document.
func BuildPayslipPDF(slip *core.Payslip, currencySymbol string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Payslip")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Employee: %s", slip.StaffName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		slip.PeriodStart.Format("2006-01-02"), slip.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(8)

	pdf.Cell(0, 6, fmt.Sprintf("Base pay: %s", money(currencySymbol, slip.BasePay)))
	pdf.Ln(5)
	if slip.OvertimeHours.IsPositive() {
		pdf.Cell(0, 6, fmt.Sprintf("Overtime (%s h): %s",
			slip.OvertimeHours.String(), money(currencySymbol, slip.OvertimePay)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Gross pay: %s", money(currencySymbol, slip.GrossPay)))
	pdf.Ln(8)

	for _, d := range slip.Deductions {
		pdf.Cell(0, 6, fmt.Sprintf("Less %s: %s", d.Label, money(currencySymbol, d.Amount)))
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Net pay: %s", money(currencySymbol, slip.NetPay)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
