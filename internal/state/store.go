package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/jswain/billfold/internal/store"
)

// Snapshot is the latest invoice list data available to the UI.
type Snapshot struct {
	Invoices            []store.Invoice
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the service has been unreachable for multiple
// consecutive refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the invoice list snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored list wholesale. When err is non-nil the previous
// list is kept, favoring stale data over an empty view, and the failure is
// recorded for visibility.
func (s *Store) Update(invoices []store.Invoice, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Invoices = cloneInvoices(invoices)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Invoices = cloneInvoices(s.snapshot.Invoices)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneInvoices(invoices []store.Invoice) []store.Invoice {
	if len(invoices) == 0 {
		return nil
	}
	dup := make([]store.Invoice, len(invoices))
	copy(dup, invoices)
	return dup
}
