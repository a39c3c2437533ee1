package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kioskd/internal/bridge"
	"kioskd/internal/shared/config"
	"kioskd/internal/state"
	"kioskd/pkg/logger"
)

type fakeBridge struct {
	mu sync.Mutex

	ready       bool
	startCalls  int
	touchCalls  int
	closeCalls  int
	touchStatus string
	touchErr    error
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{ready: true, touchStatus: "ACTIVE"}
}

func (f *fakeBridge) StartSession(ctx context.Context) (*bridge.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	return &bridge.SessionData{SessionKey: "k-test", ExpiresInSec: 420}, nil
}

func (f *fakeBridge) TouchSession(ctx context.Context, sessionKey string) (*bridge.TouchData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchCalls++
	if f.touchErr != nil {
		return nil, f.touchErr
	}
	return &bridge.TouchData{Status: f.touchStatus, ExpiresInSec: 420}, nil
}

func (f *fakeBridge) CloseSession(ctx context.Context, sessionKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return nil
}

func (f *fakeBridge) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeBridge) counts() (start, touch, closeN int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls, f.touchCalls, f.closeCalls
}

func testKioskConfig() config.KioskConfig {
	return config.KioskConfig{
		IdleTimeout:    150 * time.Millisecond,
		WarnDuration:   60 * time.Millisecond,
		TouchCooldown:  50 * time.Millisecond,
		PaymentTimeout: 200 * time.Millisecond,
		ReceiptReturn:  100 * time.Millisecond,
		TickInterval:   20 * time.Millisecond,
	}
}

func newTestManager(t *testing.T) (*Manager, *state.Store, *fakeBridge) {
	t.Helper()
	store := state.NewStore()
	fb := newFakeBridge()
	m := NewManager(store, fb, testKioskConfig(), logger.New())
	return m, store, fb
}

func TestOrderNowStartsSession(t *testing.T) {
	m, store, fb := newTestManager(t)

	require.NoError(t, m.OrderNow(context.Background()))

	assert.Equal(t, "k-test", store.SessionKey())
	assert.Equal(t, state.RouteService, store.Route())
	start, _, _ := fb.counts()
	assert.Equal(t, 1, start)
}

func TestOrderNowRefusesWhenBridgeNotReady(t *testing.T) {
	m, store, fb := newTestManager(t)
	fb.mu.Lock()
	fb.ready = false
	fb.mu.Unlock()

	err := m.OrderNow(context.Background())
	require.ErrorIs(t, err, bridge.ErrNotReady)
	assert.Equal(t, state.RouteSplash, store.Route())
}

func TestOrderNowReusesExistingSession(t *testing.T) {
	m, _, fb := newTestManager(t)

	require.NoError(t, m.OrderNow(context.Background()))
	require.NoError(t, m.OrderNow(context.Background()))

	start, _, _ := fb.counts()
	assert.Equal(t, 1, start)
}

func TestIdleExpiryResetsExactlyOnce(t *testing.T) {
	m, store, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	// Warning appears after the lead time
	require.Eventually(t, func() bool {
		return store.Snapshot().IdleWarning
	}, time.Second, 5*time.Millisecond)

	// Then the countdown runs out and converges on splash
	require.Eventually(t, func() bool {
		return store.Route() == state.RouteSplash
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, store.SessionKey())
	assert.False(t, store.Snapshot().IdleWarning)

	// Exactly one best-effort close, even after extra ticks elapse
	time.Sleep(100 * time.Millisecond)
	_, _, closes := fb.counts()
	assert.Equal(t, 1, closes)
}

func TestActivityDismissesWarning(t *testing.T) {
	m, store, _ := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	require.Eventually(t, func() bool {
		return store.Snapshot().IdleWarning
	}, time.Second, 5*time.Millisecond)

	m.Activity(context.Background())

	assert.False(t, store.Snapshot().IdleWarning)
	assert.Equal(t, state.RouteService, store.Route())
	assert.Equal(t, "k-test", store.SessionKey())
}

func TestActivityThrottlesBackendTouch(t *testing.T) {
	m, _, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	m.Activity(context.Background())
	m.Activity(context.Background())
	m.Activity(context.Background())

	_, touches, _ := fb.counts()
	assert.Equal(t, 1, touches)

	time.Sleep(60 * time.Millisecond)
	m.Activity(context.Background())
	_, touches, _ = fb.counts()
	assert.Equal(t, 2, touches)
}

func TestHeartbeatLossForcesReset(t *testing.T) {
	m, store, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	fb.mu.Lock()
	fb.touchStatus = "EXPIRED"
	fb.mu.Unlock()

	m.Activity(context.Background())

	assert.Equal(t, state.RouteSplash, store.Route())
	assert.Empty(t, store.SessionKey())
}

func TestHeartbeatRejectionForcesReset(t *testing.T) {
	m, store, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	fb.mu.Lock()
	fb.touchErr = &bridge.BusinessError{Method: "session_touch", Message: "session not found"}
	fb.mu.Unlock()

	m.Activity(context.Background())

	assert.Equal(t, state.RouteSplash, store.Route())
	assert.Empty(t, store.SessionKey())
	_, _, closes := fb.counts()
	assert.Equal(t, 1, closes)
}

func TestNoHeartbeatOffOrderingPages(t *testing.T) {
	m, store, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	store.Go(state.RouteReceipt)
	m.RouteChanged(state.RouteReceipt)

	// Past the touch cooldown; the session key is still set
	time.Sleep(60 * time.Millisecond)
	m.Activity(context.Background())

	_, touches, _ := fb.counts()
	assert.Zero(t, touches)
	assert.Equal(t, state.RouteReceipt, store.Route())
}

func TestBridgeUnavailableOnTouchForcesReset(t *testing.T) {
	m, store, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	fb.mu.Lock()
	fb.touchErr = bridge.ErrUnavailable
	fb.mu.Unlock()

	m.Activity(context.Background())

	assert.Equal(t, state.RouteSplash, store.Route())
}

func TestWatchdogSuspendedOffOrderingPages(t *testing.T) {
	m, store, fb := newTestManager(t)
	require.NoError(t, m.OrderNow(context.Background()))

	store.Go(state.RoutePayCounter)
	m.RouteChanged(state.RoutePayCounter)

	// Well past the idle budget: no warning, no reset
	time.Sleep(300 * time.Millisecond)
	assert.False(t, store.Snapshot().IdleWarning)
	assert.Equal(t, state.RoutePayCounter, store.Route())
	_, _, closes := fb.counts()
	assert.Zero(t, closes)
}

func TestForceResetWithoutSessionSkipsClose(t *testing.T) {
	m, store, fb := newTestManager(t)

	m.ForceResetToSplash(context.Background(), "test")

	assert.Equal(t, state.RouteSplash, store.Route())
	_, _, closes := fb.counts()
	assert.Zero(t, closes)
}
