package core

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TxnKind string

const (
	TxnInvoice TxnKind = "invoice"
	TxnPayment TxnKind = "payment"
)

// Txn is a normalized ledger transaction. Amount is signed: invoices are
// positive (they increase what the client owes), payments are negative.
type Txn struct {
	Date      time.Time       `json:"date"`
	Kind      TxnKind         `json:"kind"`
	Reference string          `json:"reference"`
	SourceID  uuid.UUID       `json:"source_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// StatementLine is a Txn annotated with the running balance after it.
type StatementLine struct {
	Txn
	Balance decimal.Decimal `json:"balance"`
}

// payRefLen is how many characters of the payment ID make the display reference.
const payRefLen = 4

// PaymentReference derives the display reference for a payment.
// IDs shorter than four characters are used whole.
func PaymentReference(id uuid.UUID) string {
	s := id.String()
	if len(s) > payRefLen {
		s = s[:payRefLen]
	}
	return "PAY-" + s
}

// dayOf reduces a timestamp to day precision for ordering. Time of day on
// source records is ignored beyond the calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeInvoices filters and maps raw invoices for one customer into
// signed transactions. Drafts, cancelled invoices, quotes, and anything
// dated after the cutoff are excluded.
func NormalizeInvoices(invoices []Invoice, customerID uuid.UUID, cutoff time.Time) []Txn {
	cutoffDay := dayOf(cutoff)
	txns := make([]Txn, 0, len(invoices))
	for _, inv := range invoices {
		if inv.CustomerID != customerID || inv.DocKind != DocKindInvoice {
			continue
		}
		if inv.Status == InvoiceStatusDraft || inv.Status == InvoiceStatusCancelled {
			continue
		}
		if dayOf(inv.Date).After(cutoffDay) {
			continue
		}
		txns = append(txns, Txn{
			Date:      inv.Date,
			Kind:      TxnInvoice,
			Reference: inv.Number,
			SourceID:  inv.ID,
			Amount:    inv.Total,
		})
	}
	return txns
}

// NormalizePayments filters and maps raw payments for one customer into
// signed transactions. Payments carry no status; all up to the cutoff count.
func NormalizePayments(payments []Payment, customerID uuid.UUID, cutoff time.Time) []Txn {
	cutoffDay := dayOf(cutoff)
	txns := make([]Txn, 0, len(payments))
	for _, p := range payments {
		if p.CustomerID != customerID {
			continue
		}
		if dayOf(p.Date).After(cutoffDay) {
			continue
		}
		txns = append(txns, Txn{
			Date:      p.Date,
			Kind:      TxnPayment,
			Reference: PaymentReference(p.ID),
			SourceID:  p.ID,
			Amount:    p.Amount.Neg(),
		})
	}
	return txns
}

// kindRank orders invoices strictly before payments on the same day, so a
// same-day invoice is in the balance before the payment applied against it.
func kindRank(k TxnKind) int {
	if k == TxnInvoice {
		return 0
	}
	return 1
}

// MergeChronological combines normalized transaction streams into one
// sequence ordered by day, then invoice-before-payment. The sort is stable:
// transactions of the same kind on the same day keep their source order.
func MergeChronological(invoices, payments []Txn) []Txn {
	merged := make([]Txn, 0, len(invoices)+len(payments))
	merged = append(merged, invoices...)
	merged = append(merged, payments...)
	sort.SliceStable(merged, func(i, j int) bool {
		di, dj := dayOf(merged[i].Date), dayOf(merged[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return kindRank(merged[i].Kind) < kindRank(merged[j].Kind)
	})
	return merged
}

// RunningBalance folds an ordered transaction sequence into statement lines,
// accumulating from zero. Arithmetic stays in exact decimals; rounding is a
// presentation concern.
func RunningBalance(txns []Txn) []StatementLine {
	lines := make([]StatementLine, 0, len(txns))
	balance := decimal.Zero
	for _, txn := range txns {
		balance = balance.Add(txn.Amount)
		lines = append(lines, StatementLine{Txn: txn, Balance: balance})
	}
	return lines
}

// BuildStatement produces the full client statement: normalize both streams,
// merge chronologically, accumulate the running balance. A zero cutoff means
// "now". Pure; identical inputs produce identical output.
func BuildStatement(customerID uuid.UUID, invoices []Invoice, payments []Payment, cutoff time.Time) []StatementLine {
	if cutoff.IsZero() {
		cutoff = time.Now()
	}
	inv := NormalizeInvoices(invoices, customerID, cutoff)
	pay := NormalizePayments(payments, customerID, cutoff)
	return RunningBalance(MergeChronological(inv, pay))
}

// OutstandingBalance is the final running balance of a statement, i.e. what
// the client owes as of the cutoff. Zero for an empty statement.
func OutstandingBalance(lines []StatementLine) decimal.Decimal {
	if len(lines) == 0 {
		return decimal.Zero
	}
	return lines[len(lines)-1].Balance
}
