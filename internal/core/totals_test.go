package core_test

import (
	"testing"

	"backoffice/internal/core"
)

func item(qty, price, taxRate string) core.InvoiceItem {
	return core.InvoiceItem{
		Quantity:       dec(qty),
		UnitPrice:      dec(price),
		TaxRatePercent: dec(taxRate),
	}
}

func TestComputeDocumentTotals(t *testing.T) {
	tests := []struct {
		name                       string
		items                      []core.InvoiceItem
		subtotal, taxAmount, total string
	}{
		{
			name:     "empty document",
			items:    nil,
			subtotal: "0", taxAmount: "0", total: "0",
		},
		{
			name: "mixed tax rates",
			items: []core.InvoiceItem{
				item("2", "50", "15"),
				item("1", "100", "0"),
			},
			subtotal: "200", taxAmount: "15", total: "215",
		},
		{
			name: "single taxed item",
			items: []core.InvoiceItem{
				item("3", "19.99", "15"),
			},
			subtotal: "59.97", taxAmount: "8.9955", total: "68.9655",
		},
		{
			name: "fractional quantity",
			items: []core.InvoiceItem{
				item("1.5", "10.00", "10"),
			},
			subtotal: "15", taxAmount: "1.5", total: "16.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ComputeDocumentTotals(tt.items)
			if !got.Subtotal.Equal(dec(tt.subtotal)) {
				t.Errorf("subtotal = %s, want %s", got.Subtotal, tt.subtotal)
			}
			if !got.TaxAmount.Equal(dec(tt.taxAmount)) {
				t.Errorf("tax = %s, want %s", got.TaxAmount, tt.taxAmount)
			}
			if !got.Total.Equal(dec(tt.total)) {
				t.Errorf("total = %s, want %s", got.Total, tt.total)
			}
		})
	}
}
