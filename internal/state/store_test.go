package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kioskd/internal/cart"
)

func TestGoStampsFooter(t *testing.T) {
	store := NewStore()

	applied := store.Go(RouteMenu)
	assert.Equal(t, RouteMenu, applied)

	snap := store.Snapshot()
	assert.Equal(t, RouteMenu, snap.Route)
	assert.Equal(t, "Open: menu", snap.Footer)
}

func TestGoUnknownRouteFallsBackToSplash(t *testing.T) {
	store := NewStore()
	store.Go(RouteCart)

	applied := store.Go(Route("no-such-screen"))
	assert.Equal(t, RouteSplash, applied)
	assert.Equal(t, RouteSplash, store.Route())
}

func TestRouteClassification(t *testing.T) {
	assert.True(t, IsOrderingPage(RouteService))
	assert.True(t, IsOrderingPage(RouteMenu))
	assert.True(t, IsOrderingPage(RouteProductVariant))
	assert.True(t, IsOrderingPage(RouteCart))
	assert.True(t, IsOrderingPage(RoutePaymentMethod))

	assert.False(t, IsOrderingPage(RouteSplash))
	assert.False(t, IsOrderingPage(RoutePayCounter))
	assert.False(t, IsOrderingPage(RouteReceipt))

	assert.True(t, IsPaymentPage(RoutePayCounter))
	assert.True(t, IsPaymentPage(RoutePaymentQR))
	assert.False(t, IsPaymentPage(RoutePaymentMethod))
}

func TestCommitLineHonorsArmedEdit(t *testing.T) {
	store := NewStore()

	store.CommitLine(cart.Line{ProductID: 1, Qty: 1, LineTotal: 5})
	store.CommitLine(cart.Line{ProductID: 2, Qty: 2, LineTotal: 10})
	require.Len(t, store.CartLines(), 2)

	store.ArmProduct(1, 0)
	assert.Equal(t, 0, store.EditCartIndex())

	store.CommitLine(cart.Line{ProductID: 1, Qty: 9, LineTotal: 45})
	lines := store.CartLines()
	require.Len(t, lines, 2)
	assert.Equal(t, 9, lines[0].Qty)

	// Edit mode disarmed after commit
	assert.Equal(t, -1, store.EditCartIndex())
	assert.Equal(t, int64(0), store.ProductID())
}

func TestAdjustQtyClamps(t *testing.T) {
	store := NewStore()
	store.CommitLine(cart.Line{ProductID: 1, Qty: 2, BasePrice: 3.0})

	store.AdjustQty(0, -5)
	assert.Equal(t, 1, store.CartLines()[0].Qty)

	store.AdjustQty(0, 200)
	assert.Equal(t, 99, store.CartLines()[0].Qty)
	assert.Equal(t, 297.0, store.CartLines()[0].LineTotal)

	// Out-of-range index is a no-op
	store.AdjustQty(5, 1)
	require.Len(t, store.CartLines(), 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.CommitLine(cart.Line{ProductID: 1, Qty: 1})

	snap := store.Snapshot()
	snap.Cart[0].Qty = 42

	assert.Equal(t, 1, store.CartLines()[0].Qty)
}

func TestSnapshotTotals(t *testing.T) {
	store := NewStore()
	store.CommitLine(cart.Line{ProductID: 1, Qty: 2, LineTotal: 10})
	store.CommitLine(cart.Line{ProductID: 2, Qty: 1, LineTotal: 4})

	snap := store.Snapshot()
	assert.Equal(t, 14.0, snap.CartTotal)
	assert.Equal(t, 3, snap.CartCount)
}

func TestResetOrderingClearsTransients(t *testing.T) {
	store := NewStore()
	store.SetSessionKey("k-123")
	store.SetServiceType("dine_in")
	store.CommitLine(cart.Line{ProductID: 1, Qty: 1})
	store.SetPaymentMethod("counter")
	store.SetOrder(42, "O007-20260829-0001")
	store.ArmProduct(5, 0)
	store.SetIdleWarning(true, 7)
	store.Go(RoutePayCounter)

	store.ResetOrdering()

	snap := store.Snapshot()
	assert.Equal(t, RouteSplash, snap.Route)
	assert.Equal(t, "Open: splash", snap.Footer)
	assert.False(t, snap.SessionActive)
	assert.False(t, snap.IdleWarning)
	assert.Empty(t, snap.ServiceType)
	assert.Empty(t, snap.Cart)
	assert.Empty(t, snap.PaymentMethod)
	assert.Zero(t, snap.OrderID)
	assert.Empty(t, snap.OrderNo)
	assert.Equal(t, -1, snap.EditCartIndex)
}
