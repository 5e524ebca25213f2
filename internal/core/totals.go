package core

import "github.com/shopspring/decimal"

// DocumentTotals holds the computed money fields of a line-item document.
type DocumentTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeDocumentTotals sums line items into subtotal, tax, and total.
// Tax rates are per item, so mixed-rate documents work. No per-line
// rounding: only the three result figures are rounded at display time.
func ComputeDocumentTotals(items []InvoiceItem) DocumentTotals {
	totals := DocumentTotals{
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		Total:     decimal.Zero,
	}
	for _, item := range items {
		line := item.Quantity.Mul(item.UnitPrice)
		totals.Subtotal = totals.Subtotal.Add(line)
		totals.TaxAmount = totals.TaxAmount.Add(line.Mul(item.TaxRatePercent).Div(oneHundred))
	}
	totals.Total = totals.Subtotal.Add(totals.TaxAmount)
	return totals
}
