package core

import "github.com/shopspring/decimal"

// TotalOwing sums the cached balances of clients who owe money. Credit
// balances (negative) contribute nothing rather than offsetting the total.
func TotalOwing(customers []Customer) decimal.Decimal {
	total := decimal.Zero
	for _, c := range customers {
		if c.CurrentBalance.IsPositive() {
			total = total.Add(c.CurrentBalance)
		}
	}
	return total
}
