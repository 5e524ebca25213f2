package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayslipDeduction is a named amount withheld from gross pay.
type PayslipDeduction struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Payslip is a computed pay record for one staff member and period.
// Not persisted; rendered to PDF by the export layer.
type Payslip struct {
	StaffID         uuid.UUID          `json:"staff_id"`
	StaffName       string             `json:"staff_name"`
	PeriodStart     time.Time          `json:"period_start"`
	PeriodEnd       time.Time          `json:"period_end"`
	BasePay         decimal.Decimal    `json:"base_pay"`
	OvertimeHours   decimal.Decimal    `json:"overtime_hours"`
	OvertimePay     decimal.Decimal    `json:"overtime_pay"`
	GrossPay        decimal.Decimal    `json:"gross_pay"`
	Deductions      []PayslipDeduction `json:"deductions"`
	TotalDeductions decimal.Decimal    `json:"total_deductions"`
	NetPay          decimal.Decimal    `json:"net_pay"`
}

// overtimeMultiplier is time-and-a-half on the staff hourly rate.
var overtimeMultiplier = decimal.NewFromFloat(1.5)

// ComputePayslip builds a payslip: overtime at 1.5x the hourly rate on top
// of base salary, minus the given deductions. Exact decimal arithmetic.
func ComputePayslip(staff Staff, periodStart, periodEnd time.Time, overtimeHours decimal.Decimal, deductions []PayslipDeduction) Payslip {
	overtimePay := overtimeHours.Mul(staff.HourlyRate).Mul(overtimeMultiplier)
	gross := staff.BaseSalary.Add(overtimePay)

	totalDeductions := decimal.Zero
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
	}

	return Payslip{
		StaffID:         staff.ID,
		StaffName:       staff.FullName,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		BasePay:         staff.BaseSalary,
		OvertimeHours:   overtimeHours,
		OvertimePay:     overtimePay,
		GrossPay:        gross,
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		NetPay:          gross.Sub(totalDeductions),
	}
}
