package payment

import (
	"context"
	"sync"
	"time"

	"kioskd/internal/shared/config"
	"kioskd/internal/state"
	"kioskd/pkg/logger"
	"kioskd/pkg/metrics"
)

// orderCanceller is the slice of the RPC bridge the payment timer needs
type orderCanceller interface {
	CancelOrder(ctx context.Context, orderID int64) error
}

// sessionResetter converges the kiosk back to the splash screen
type sessionResetter interface {
	ForceResetToSplash(ctx context.Context, reason string)
}

// Manager runs the payment screen countdown. The budget resets on activity,
// pauses while a receipt is printing, and on expiry cancels the active order
// best-effort before handing convergence to the session manager.
type Manager struct {
	store    *state.Store
	orders   orderCanceller
	sessions sessionResetter
	cfg      config.KioskConfig
	log      *logger.Logger

	mu        sync.Mutex
	done      chan struct{}
	remaining int
	printing  bool
}

// NewManager creates a payment timer. Nothing runs until Start.
func NewManager(store *state.Store, orders orderCanceller, sessions sessionResetter, cfg config.KioskConfig, log *logger.Logger) *Manager {
	return &Manager{
		store:    store,
		orders:   orders,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

// Start begins (or restarts) the countdown with a full budget for the given
// payment screen. Any previous countdown is stopped first.
func (m *Manager) Start(route state.Route) {
	m.mu.Lock()
	m.stopLocked()
	done := make(chan struct{})
	m.done = done
	// Countdown in ticks; the tick interval is one second in production
	m.remaining = int(m.cfg.PaymentTimeout / m.cfg.TickInterval)
	remaining := m.remaining
	m.mu.Unlock()

	m.store.SetPaymentCountdown(remaining)

	go m.run(route, done)
}

// Activity restores the full budget if the countdown is running and no
// print is in flight
func (m *Manager) Activity() {
	m.mu.Lock()
	if m.done == nil || m.printing {
		m.mu.Unlock()
		return
	}
	m.remaining = int(m.cfg.PaymentTimeout / m.cfg.TickInterval)
	remaining := m.remaining
	m.mu.Unlock()

	m.store.SetPaymentCountdown(remaining)
}

// SetPrinting pauses or resumes the countdown around a print attempt. The
// ticker keeps running; ticks simply stop consuming budget.
func (m *Manager) SetPrinting(on bool) {
	m.mu.Lock()
	m.printing = on
	m.mu.Unlock()
	m.store.SetPrinting(on)
}

// Stop ends the countdown without expiring it
func (m *Manager) Stop() {
	m.mu.Lock()
	m.stopLocked()
	m.mu.Unlock()
	m.store.SetPaymentCountdown(0)
}

func (m *Manager) stopLocked() {
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

// run drives one countdown until it is stopped, leaves its screen, or
// expires
func (m *Manager) run(route state.Route, done chan struct{}) {
	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// A navigation away from the payment screen ends this
			// countdown; whoever navigated owns what happens next.
			if m.store.Route() != route {
				m.mu.Lock()
				if m.done == done {
					m.done = nil
				}
				m.mu.Unlock()
				return
			}

			m.mu.Lock()
			if m.printing {
				m.mu.Unlock()
				continue
			}
			m.remaining--
			remaining := m.remaining
			expired := remaining <= 0
			if expired && m.done == done {
				m.done = nil
			}
			m.mu.Unlock()

			if !expired {
				m.store.SetPaymentCountdown(remaining)
				continue
			}

			m.expire()
			return
		}
	}
}

// expire cancels the active order best-effort and resets the kiosk
func (m *Manager) expire() {
	ctx := context.Background()

	if orderID := m.store.OrderID(); orderID != 0 {
		if err := m.orders.CancelOrder(ctx, orderID); err != nil {
			m.log.Warn("Order cancel on payment timeout failed", "order_id", orderID, "error", err)
		} else {
			m.log.LogOrderCancelled(ctx, orderID, "payment timeout")
		}
	}

	metrics.RecordSessionEvent("payment_expired")
	m.sessions.ForceResetToSplash(ctx, "payment timeout")
}
