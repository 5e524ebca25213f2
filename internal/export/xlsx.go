package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"backoffice/internal/core"
)

// BuildStatementXLSX renders a client statement as an XLSX workbook with a
// summary sheet and a lines sheet.
func BuildStatementXLSX(stmt *core.Statement) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	linesSheet := "lines"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(linesSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Client Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Client")
	_ = f.SetCellValue(summarySheet, "B3", stmt.CustomerName)
	_ = f.SetCellValue(summarySheet, "A4", "As at")
	_ = f.SetCellValue(summarySheet, "B4", stmt.CutoffDate.Format("2006-01-02"))
	_ = f.SetCellValue(summarySheet, "A5", "Balance due")
	_ = f.SetCellValue(summarySheet, "B5", stmt.ClosingBalance.StringFixed(2))

	_ = f.SetCellValue(linesSheet, "A1", "Date")
	_ = f.SetCellValue(linesSheet, "B1", "Type")
	_ = f.SetCellValue(linesSheet, "C1", "Reference")
	_ = f.SetCellValue(linesSheet, "D1", "Amount")
	_ = f.SetCellValue(linesSheet, "E1", "Balance")
	for i, line := range stmt.Lines {
		row := i + 2
		kind := "Invoice"
		if line.Kind == core.TxnPayment {
			kind = "Payment"
		}
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("A%d", row), line.Date.Format("2006-01-02"))
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("B%d", row), kind)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("C%d", row), line.Reference)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("D%d", row), line.Amount.StringFixed(2))
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("E%d", row), line.Balance.StringFixed(2))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
