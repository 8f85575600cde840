package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jswain/billfold/internal/state"
	"github.com/jswain/billfold/internal/store"
)

const (
	defaultRefreshInterval = 30 * time.Second
	maxBackoff             = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the invoice list
// at a fixed cadence, backing off exponentially while the service is
// unreachable. It returns immediately.
func StartPoller(ctx context.Context, invoices *state.Store, client *store.Client, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		for {
			refresh(ctx, invoices, client, logger)

			wait := calculateBackoff(invoices.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh replaces the list snapshot wholesale. Failures keep the previous
// list visible and are only logged; a background fetch never blanks the
// screen.
func refresh(ctx context.Context, invoices *state.Store, client *store.Client, logger zerolog.Logger) {
	list, err := client.ListInvoices(ctx)
	if err != nil {
		invoices.Update(nil, err)
		logger.Warn().Err(err).Msg("invoice list refresh failed")
		return
	}
	invoices.Update(list, nil)
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
