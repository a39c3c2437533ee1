package state

// Route identifies one kiosk screen
type Route string

const (
	RouteSplash         Route = "splash"
	RouteService        Route = "service"
	RouteMenu           Route = "menu"
	RouteProductVariant Route = "product-variant"
	RouteCart           Route = "cart"
	RoutePaymentMethod  Route = "payment-method"
	RoutePayCounter     Route = "pay-counter"
	RoutePaymentQR      Route = "payment-qr"
	RouteReceipt        Route = "receipt"
)

// orderingPages are the screens where the idle watchdog runs. Payment and
// receipt screens run their own timers instead.
var orderingPages = map[Route]bool{
	RouteService:        true,
	RouteMenu:           true,
	RouteProductVariant: true,
	RouteCart:           true,
	RoutePaymentMethod:  true,
}

// paymentPages are the screens governed by the payment countdown
var paymentPages = map[Route]bool{
	RoutePayCounter: true,
	RoutePaymentQR:  true,
}

// IsOrderingPage reports whether the idle watchdog applies on this route
func IsOrderingPage(r Route) bool {
	return orderingPages[r]
}

// IsPaymentPage reports whether the payment countdown applies on this route
func IsPaymentPage(r Route) bool {
	return paymentPages[r]
}

// Valid reports whether r names a known screen
func (r Route) Valid() bool {
	switch r {
	case RouteSplash, RouteService, RouteMenu, RouteProductVariant,
		RouteCart, RoutePaymentMethod, RoutePayCounter, RoutePaymentQR,
		RouteReceipt:
		return true
	}
	return false
}

// Normalize maps an unknown route name onto the splash screen
func Normalize(r Route) Route {
	if !r.Valid() {
		return RouteSplash
	}
	return r
}
