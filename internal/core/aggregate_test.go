package core_test

import (
	"testing"

	"backoffice/internal/core"
)

func TestTotalOwing(t *testing.T) {
	tests := []struct {
		name     string
		balances []string
		want     string
	}{
		{name: "empty portfolio", balances: nil, want: "0"},
		{name: "all owing", balances: []string{"100.00", "250.50"}, want: "350.50"},
		{name: "credit balances excluded", balances: []string{"100.00", "-50.00"}, want: "100.00"},
		{name: "zero balances contribute nothing", balances: []string{"0", "0"}, want: "0"},
		{name: "all in credit", balances: []string{"-10", "-20"}, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var customers []core.Customer
			for _, b := range tt.balances {
				customers = append(customers, core.Customer{CurrentBalance: dec(b)})
			}
			if got := core.TotalOwing(customers); !got.Equal(dec(tt.want)) {
				t.Errorf("TotalOwing = %s, want %s", got, tt.want)
			}
		})
	}
}
