package session

import (
	"context"
	"sync"
	"time"

	"kioskd/internal/bridge"
	"kioskd/internal/shared/config"
	"kioskd/internal/state"
	"kioskd/pkg/logger"
	"kioskd/pkg/metrics"
)

// bridgeClient is the slice of the RPC bridge the session manager needs
type bridgeClient interface {
	StartSession(ctx context.Context) (*bridge.SessionData, error)
	TouchSession(ctx context.Context, sessionKey string) (*bridge.TouchData, error)
	CloseSession(ctx context.Context, sessionKey string) error
	Ready() bool
}

// Manager owns the customer session lifecycle: starting a backend session
// when ordering begins, keeping it alive on activity, warning before idle
// expiry, and converging everything back to the splash screen exactly once
// when the session ends for any reason.
type Manager struct {
	store  *state.Store
	bridge bridgeClient
	cfg    config.KioskConfig
	log    *logger.Logger

	mu        sync.Mutex
	idleTimer *time.Timer
	warnStop  chan struct{}
	lastTouch time.Time
}

// NewManager creates a session manager. Nothing runs until ordering begins.
func NewManager(store *state.Store, b bridgeClient, cfg config.KioskConfig, log *logger.Logger) *Manager {
	return &Manager{
		store:  store,
		bridge: b,
		cfg:    cfg,
		log:    log,
	}
}

// OrderNow begins a customer session from the splash screen. It starts a
// backend session, moves to the service screen and arms the idle watchdog.
func (m *Manager) OrderNow(ctx context.Context) error {
	if !m.bridge.Ready() {
		return bridge.ErrNotReady
	}

	if m.store.SessionKey() == "" {
		data, err := m.bridge.StartSession(ctx)
		if err != nil {
			return err
		}
		m.store.SetSessionKey(data.SessionKey)
		metrics.RecordSessionEvent("started")
	}

	m.store.Go(state.RouteService)
	m.armIdle()
	return nil
}

// Activity registers a customer interaction. It dismisses any idle warning,
// re-arms the watchdog, and keeps the backend session alive. Backend touches
// are throttled by the cooldown; the local watchdog resets on every call.
func (m *Manager) Activity(ctx context.Context) {
	m.dismissWarning()

	// Heartbeats only keep ordering screens alive; other screens either run
	// their own timer (payment) or are already winding the session down.
	if !state.IsOrderingPage(m.store.Route()) {
		return
	}
	m.armIdle()

	key := m.store.SessionKey()
	if key == "" || !m.throttleTouch() {
		return
	}

	data, err := m.bridge.TouchSession(ctx, key)
	if err != nil {
		// A backend rejection means the session is gone; no retry
		if be, ok := bridge.AsBusiness(err); ok {
			m.log.LogHeartbeatLost(ctx, be.Message, err)
			m.ForceResetToSplash(ctx, "heartbeat rejected")
			return
		}
		if bridge.IsUnavailable(err) {
			m.log.LogHeartbeatLost(ctx, "", err)
			m.ForceResetToSplash(ctx, "heartbeat lost")
		}
		return
	}
	if data.Status != "ACTIVE" {
		m.log.LogHeartbeatLost(ctx, data.Status, nil)
		m.ForceResetToSplash(ctx, "session "+data.Status)
	}
}

// RouteChanged re-evaluates the watchdog after a navigation. Ordering pages
// arm it; every other screen suspends it and drops any pending warning.
func (m *Manager) RouteChanged(route state.Route) {
	if state.IsOrderingPage(route) {
		m.armIdle()
		return
	}
	m.suspendIdle()
}

// ForceResetToSplash is the single convergence point for ending a session.
// It hides the warning, stops the watchdog, clears all ordering state, and
// closes the backend session best-effort, at most once.
func (m *Manager) ForceResetToSplash(ctx context.Context, reason string) {
	m.suspendIdle()

	key := m.store.SessionKey()
	m.store.ResetOrdering()

	if key != "" {
		if err := m.bridge.CloseSession(ctx, key); err != nil {
			m.log.Warn("Session close failed", "error", err)
		}
	}

	metrics.RecordSessionEvent("reset")
	m.log.LogSessionReset(ctx, reason)
}

// throttleTouch reports whether enough time has passed since the last
// backend touch, and records the attempt when it has
func (m *Manager) throttleTouch() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if now.Sub(m.lastTouch) < m.cfg.TouchCooldown {
		return false
	}
	m.lastTouch = now
	return true
}

// armIdle (re)starts the countdown to the idle warning
func (m *Manager) armIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopWarnLocked()
	lead := m.cfg.IdleTimeout - m.cfg.WarnDuration
	if lead < 0 {
		lead = 0
	}
	if m.idleTimer != nil {
		m.idleTimer.Stop()
	}
	m.idleTimer = time.AfterFunc(lead, m.beginWarning)
}

// suspendIdle stops the watchdog and hides any pending warning
func (m *Manager) suspendIdle() {
	m.mu.Lock()
	if m.idleTimer != nil {
		m.idleTimer.Stop()
		m.idleTimer = nil
	}
	m.stopWarnLocked()
	m.mu.Unlock()

	m.store.SetIdleWarning(false, 0)
}

// dismissWarning hides the warning overlay if showing
func (m *Manager) dismissWarning() {
	m.mu.Lock()
	resumed := m.warnStop != nil
	m.stopWarnLocked()
	m.mu.Unlock()

	if resumed {
		m.store.SetIdleWarning(false, 0)
		metrics.RecordSessionEvent("warning_dismissed")
	}
}

func (m *Manager) stopWarnLocked() {
	if m.warnStop != nil {
		close(m.warnStop)
		m.warnStop = nil
	}
}

// beginWarning shows the idle overlay and counts it down. Fired by the idle
// timer; a route change away from ordering pages in the meantime cancels it.
func (m *Manager) beginWarning() {
	if !state.IsOrderingPage(m.store.Route()) {
		return
	}

	m.mu.Lock()
	m.stopWarnLocked()
	stop := make(chan struct{})
	m.warnStop = stop
	m.mu.Unlock()

	// Countdown in ticks; the tick interval is one second in production
	remaining := int(m.cfg.WarnDuration / m.cfg.TickInterval)
	m.store.SetIdleWarning(true, remaining)
	metrics.RecordSessionEvent("warning_shown")

	go func() {
		ticker := time.NewTicker(m.cfg.TickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				remaining--
				if remaining > 0 {
					m.store.SetIdleWarning(true, remaining)
					continue
				}
				metrics.RecordSessionEvent("idle_expired")
				m.ForceResetToSplash(context.Background(), "idle timeout")
				return
			}
		}
	}()
}
