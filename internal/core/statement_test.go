package core_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func invoice(customerID uuid.UUID, number, date, total string, status core.InvoiceStatus) core.Invoice {
	return core.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		DocKind:    core.DocKindInvoice,
		Number:     number,
		Date:       day(date),
		Status:     status,
		Total:      dec(total),
	}
}

func payment(customerID uuid.UUID, id, date, amount string) core.Payment {
	return core.Payment{
		ID:         uuid.MustParse(id),
		CustomerID: customerID,
		Date:       day(date),
		Amount:     dec(amount),
	}
}

func TestBuildStatement_SameDayInvoiceBeforePayment(t *testing.T) {
	c1 := uuid.New()
	invoices := []core.Invoice{
		invoice(c1, "INV-001", "2024-01-05", "1000.00", core.InvoiceStatusSent),
	}
	payments := []core.Payment{
		payment(c1, "abcd1234-0000-0000-0000-000000000000", "2024-01-05", "400.00"),
	}

	lines := core.BuildStatement(c1, invoices, payments, day("2024-12-31"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	first, second := lines[0], lines[1]
	if first.Kind != core.TxnInvoice || first.Reference != "INV-001" {
		t.Errorf("first line should be the invoice, got %+v", first)
	}
	if !first.Amount.Equal(dec("1000.00")) || !first.Balance.Equal(dec("1000.00")) {
		t.Errorf("invoice line amount/balance wrong: %s / %s", first.Amount, first.Balance)
	}
	if second.Kind != core.TxnPayment || second.Reference != "PAY-abcd" {
		t.Errorf("second line should be the payment, got %+v", second)
	}
	if !second.Amount.Equal(dec("-400.00")) || !second.Balance.Equal(dec("600.00")) {
		t.Errorf("payment line amount/balance wrong: %s / %s", second.Amount, second.Balance)
	}
}

func TestBuildStatement_ExclusionRules(t *testing.T) {
	c1 := uuid.New()
	c2 := uuid.New()

	invoices := []core.Invoice{
		invoice(c1, "INV-001", "2024-01-01", "100.00", core.InvoiceStatusSent),
		invoice(c1, "INV-002", "2024-01-02", "200.00", core.InvoiceStatusDraft),
		invoice(c1, "INV-003", "2024-01-03", "300.00", core.InvoiceStatusCancelled),
		invoice(c2, "INV-004", "2024-01-04", "400.00", core.InvoiceStatusSent),
		invoice(c1, "INV-005", "2024-06-01", "500.00", core.InvoiceStatusSent), // after cutoff
	}
	quote := invoice(c1, "QUO-001", "2024-01-01", "999.00", core.InvoiceStatusSent)
	quote.DocKind = core.DocKindQuote
	invoices = append(invoices, quote)

	payments := []core.Payment{
		payment(c2, "11111111-0000-0000-0000-000000000000", "2024-01-05", "50.00"),
	}

	lines := core.BuildStatement(c1, invoices, payments, day("2024-03-31"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %+v", len(lines), lines)
	}
	if lines[0].Reference != "INV-001" {
		t.Errorf("expected only INV-001, got %s", lines[0].Reference)
	}
	for _, l := range lines {
		if l.Kind == core.TxnPayment {
			t.Errorf("payment of another client leaked into statement: %+v", l)
		}
	}
}

func TestBuildStatement_CutoffDayInclusive(t *testing.T) {
	c1 := uuid.New()

	// Both transactions fall on the cutoff day but after the cutoff's
	// time-of-day. The cutoff bounds by calendar day, so both count.
	inv := invoice(c1, "INV-001", "2024-03-31", "100.00", core.InvoiceStatusSent)
	inv.Date = time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	pay := payment(c1, "55555555-0000-0000-0000-000000000000", "2024-03-31", "40.00")
	pay.Date = time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC)

	cutoff := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)
	lines := core.BuildStatement(c1, []core.Invoice{inv}, []core.Payment{pay}, cutoff)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines on the cutoff day, got %d: %+v", len(lines), lines)
	}
	if !core.OutstandingBalance(lines).Equal(dec("60.00")) {
		t.Errorf("closing balance = %s, want 60.00", core.OutstandingBalance(lines))
	}

	// One day later is out.
	inv.Date = time.Date(2024, 4, 1, 0, 0, 1, 0, time.UTC)
	lines = core.BuildStatement(c1, []core.Invoice{inv}, nil, cutoff)
	if len(lines) != 0 {
		t.Errorf("invoice dated after the cutoff day leaked in: %+v", lines)
	}
}

func TestBuildStatement_BalanceIdentity(t *testing.T) {
	c1 := uuid.New()
	invoices := []core.Invoice{
		invoice(c1, "INV-001", "2024-01-10", "150.50", core.InvoiceStatusSent),
		invoice(c1, "INV-002", "2024-02-10", "249.50", core.InvoiceStatusPaid),
		invoice(c1, "INV-003", "2024-03-10", "1000.00", core.InvoiceStatusOverdue),
	}
	payments := []core.Payment{
		payment(c1, "22222222-0000-0000-0000-000000000000", "2024-02-15", "400.00"),
		payment(c1, "33333333-0000-0000-0000-000000000000", "2024-03-20", "250.25"),
	}

	lines := core.BuildStatement(c1, invoices, payments, day("2024-12-31"))

	sum := decimal.Zero
	for i, l := range lines {
		sum = sum.Add(l.Amount)
		if !l.Balance.Equal(sum) {
			t.Errorf("line %d balance %s != running sum %s", i, l.Balance, sum)
		}
	}
	if got := core.OutstandingBalance(lines); !got.Equal(sum) {
		t.Errorf("closing balance %s != sum of amounts %s", got, sum)
	}
	if want := dec("749.75"); !sum.Equal(want) {
		t.Errorf("final balance = %s, want %s", sum, want)
	}
}

func TestBuildStatement_Idempotent(t *testing.T) {
	c1 := uuid.New()
	invoices := []core.Invoice{
		invoice(c1, "INV-001", "2024-01-05", "100.00", core.InvoiceStatusSent),
		invoice(c1, "INV-002", "2024-01-05", "200.00", core.InvoiceStatusSent),
	}
	payments := []core.Payment{
		payment(c1, "44444444-0000-0000-0000-000000000000", "2024-01-05", "50.00"),
	}
	cutoff := day("2024-02-01")

	a := core.BuildStatement(c1, invoices, payments, cutoff)
	b := core.BuildStatement(c1, invoices, payments, cutoff)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different statements:\n%+v\n%+v", a, b)
	}
}

func TestBuildStatement_StableWithinKind(t *testing.T) {
	c1 := uuid.New()
	// Three same-day invoices: output must preserve source order.
	invoices := []core.Invoice{
		invoice(c1, "INV-001", "2024-01-05", "1.00", core.InvoiceStatusSent),
		invoice(c1, "INV-002", "2024-01-05", "2.00", core.InvoiceStatusSent),
		invoice(c1, "INV-003", "2024-01-05", "3.00", core.InvoiceStatusSent),
	}

	lines := core.BuildStatement(c1, invoices, nil, day("2024-02-01"))
	want := []string{"INV-001", "INV-002", "INV-003"}
	for i, ref := range want {
		if lines[i].Reference != ref {
			t.Errorf("line %d = %s, want %s", i, lines[i].Reference, ref)
		}
	}
}

func TestBuildStatement_Empty(t *testing.T) {
	lines := core.BuildStatement(uuid.New(), nil, nil, day("2024-01-01"))
	if len(lines) != 0 {
		t.Errorf("expected empty statement, got %d lines", len(lines))
	}
	if !core.OutstandingBalance(lines).IsZero() {
		t.Errorf("empty statement balance should be zero")
	}
}

func TestPaymentReference(t *testing.T) {
	id := uuid.MustParse("deadbeef-0000-0000-0000-000000000000")
	if got := core.PaymentReference(id); got != "PAY-dead" {
		t.Errorf("PaymentReference = %q, want PAY-dead", got)
	}
}

func TestMergeChronological_OrdersAcrossDays(t *testing.T) {
	inv := []core.Txn{
		{Date: day("2024-02-01"), Kind: core.TxnInvoice, Reference: "B", Amount: dec("10")},
		{Date: day("2024-01-01"), Kind: core.TxnInvoice, Reference: "A", Amount: dec("10")},
	}
	pay := []core.Txn{
		{Date: day("2024-01-15"), Kind: core.TxnPayment, Reference: "P", Amount: dec("-5")},
	}

	merged := core.MergeChronological(inv, pay)
	want := []string{"A", "P", "B"}
	for i, ref := range want {
		if merged[i].Reference != ref {
			t.Errorf("merged[%d] = %s, want %s", i, merged[i].Reference, ref)
		}
	}
}

func TestStatementService_MemorySource(t *testing.T) {
	owner := uuid.New()
	c1 := uuid.New()

	source := core.NewMemoryLedgerSource()
	source.AddCustomer(core.Customer{ID: c1, OwnerID: owner, Name: "Acme Ltd"})
	inv := invoice(c1, "INV-001", "2024-01-05", "1000.00", core.InvoiceStatusSent)
	inv.OwnerID = owner
	source.AddInvoice(inv)
	pay := payment(c1, "abcd1234-0000-0000-0000-000000000000", "2024-01-05", "400.00")
	pay.OwnerID = owner
	source.AddPayment(pay)

	svc := core.NewStatementService(source)
	stmt, err := svc.GenerateStatement(context.Background(), owner, c1, day("2024-12-31"))
	if err != nil {
		t.Fatalf("GenerateStatement: %v", err)
	}
	if stmt.CustomerName != "Acme Ltd" {
		t.Errorf("customer name = %q", stmt.CustomerName)
	}
	if len(stmt.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(stmt.Lines))
	}
	if !stmt.ClosingBalance.Equal(dec("600.00")) {
		t.Errorf("closing balance = %s, want 600.00", stmt.ClosingBalance)
	}

	// Unknown customer is an error, not an empty statement.
	if _, err := svc.GenerateStatement(context.Background(), owner, uuid.New(), day("2024-12-31")); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown customer, got %v", err)
	}
}

func TestStatementService_Dashboard(t *testing.T) {
	owner := uuid.New()
	source := core.NewMemoryLedgerSource()
	source.AddCustomer(core.Customer{ID: uuid.New(), OwnerID: owner, Name: "A", CurrentBalance: dec("100.00")})
	source.AddCustomer(core.Customer{ID: uuid.New(), OwnerID: owner, Name: "B", CurrentBalance: dec("-50.00")})

	inv := invoice(uuid.New(), "INV-001", "2024-01-05", "100.00", core.InvoiceStatusSent)
	inv.OwnerID = owner
	source.AddInvoice(inv)

	svc := core.NewStatementService(source)
	d, err := svc.GetDashboard(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if !d.TotalOwing.Equal(dec("100.00")) {
		t.Errorf("total owing = %s, want 100.00 (credit balances excluded)", d.TotalOwing)
	}
	if d.CustomerCount != 2 || d.OpenInvoiceCount != 1 {
		t.Errorf("counts = %d customers, %d open invoices", d.CustomerCount, d.OpenInvoiceCount)
	}
	if len(d.RecentActivity) != 1 || d.RecentActivity[0].Reference != "INV-001" {
		t.Errorf("recent activity = %+v, want the single sent invoice", d.RecentActivity)
	}
}
