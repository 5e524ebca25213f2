package core_test

import (
	"testing"

	"backoffice/internal/core"

	"github.com/google/uuid"
)

func TestComputePayslip(t *testing.T) {
	staff := core.Staff{
		ID:         uuid.New(),
		FullName:   "J Smith",
		BaseSalary: dec("2000.00"),
		HourlyRate: dec("20.00"),
	}

	slip := core.ComputePayslip(staff, day("2024-03-01"), day("2024-03-31"), dec("10"), []core.PayslipDeduction{
		{Label: "Tax", Amount: dec("300.00")},
		{Label: "Pension", Amount: dec("100.00")},
	})

	// Overtime: 10h at 20.00 x 1.5 = 300.00
	if !slip.OvertimePay.Equal(dec("300.00")) {
		t.Errorf("overtime pay = %s, want 300.00", slip.OvertimePay)
	}
	if !slip.GrossPay.Equal(dec("2300.00")) {
		t.Errorf("gross = %s, want 2300.00", slip.GrossPay)
	}
	if !slip.TotalDeductions.Equal(dec("400.00")) {
		t.Errorf("deductions = %s, want 400.00", slip.TotalDeductions)
	}
	if !slip.NetPay.Equal(dec("1900.00")) {
		t.Errorf("net = %s, want 1900.00", slip.NetPay)
	}
}

func TestComputePayslip_NoOvertimeNoDeductions(t *testing.T) {
	staff := core.Staff{FullName: "J Smith", BaseSalary: dec("1500.00"), HourlyRate: dec("15.00")}
	slip := core.ComputePayslip(staff, day("2024-03-01"), day("2024-03-31"), dec("0"), nil)
	if !slip.GrossPay.Equal(dec("1500.00")) || !slip.NetPay.Equal(dec("1500.00")) {
		t.Errorf("gross/net = %s/%s, want 1500.00 both", slip.GrossPay, slip.NetPay)
	}
}
