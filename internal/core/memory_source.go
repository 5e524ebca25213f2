package core

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryLedgerSource is an in-memory LedgerSource for tests and local use.
// Safe for concurrent readers and writers.
type MemoryLedgerSource struct {
	mu        sync.RWMutex
	invoices  []Invoice
	payments  []Payment
	customers []Customer
}

// NewMemoryLedgerSource constructs an empty in-memory source.
func NewMemoryLedgerSource() *MemoryLedgerSource {
	return &MemoryLedgerSource{}
}

func (m *MemoryLedgerSource) AddCustomer(c Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = append(m.customers, c)
}

func (m *MemoryLedgerSource) AddInvoice(inv Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = append(m.invoices, inv)
}

func (m *MemoryLedgerSource) AddPayment(p Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, p)
}

func (m *MemoryLedgerSource) ListInvoices(_ context.Context, ownerID uuid.UUID) ([]Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Invoice
	for _, inv := range m.invoices {
		if inv.OwnerID == ownerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *MemoryLedgerSource) ListPayments(_ context.Context, ownerID uuid.UUID) ([]Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Payment
	for _, p := range m.payments {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryLedgerSource) ListCustomers(_ context.Context, ownerID uuid.UUID) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Customer
	for _, c := range m.customers {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}
