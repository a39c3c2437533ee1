package state

import (
	"sync"

	"kioskd/internal/cart"
	"kioskd/internal/receipt"
)

// Store is the single in-memory source of truth for the kiosk UI. Every
// mutation happens under the mutex; the UI only ever sees Snapshot copies.
type Store struct {
	mu sync.Mutex

	route  Route
	footer string

	sessionKey    string
	idleWarning   bool
	idleCountdown int

	serviceType string
	cartLines   []cart.Line

	// product-variant screen context
	productID     int64
	editCartIndex int // -1 when composing a fresh line

	paymentMethod    string
	paymentCountdown int
	printing         bool

	orderID int64
	orderNo string

	lastReceipt *receipt.Payload
}

// Snapshot is one consistent copy of the store, shaped for the UI
type Snapshot struct {
	Route  Route  `json:"route"`
	Footer string `json:"footer"`

	SessionActive bool `json:"session_active"`
	IdleWarning   bool `json:"idle_warning"`
	IdleCountdown int  `json:"idle_countdown"`

	ServiceType string      `json:"service_type"`
	Cart        []cart.Line `json:"cart"`
	CartTotal   float64     `json:"cart_total"`
	CartCount   int         `json:"cart_count"`

	ProductID     int64 `json:"product_id"`
	EditCartIndex int   `json:"edit_cart_index"`

	PaymentMethod    string `json:"payment_method"`
	PaymentCountdown int    `json:"payment_countdown"`
	Printing         bool   `json:"printing"`

	OrderID int64  `json:"order_id"`
	OrderNo string `json:"order_no"`

	LastReceipt *receipt.Payload `json:"last_receipt,omitempty"`
}

// NewStore creates a store parked on the splash screen
func NewStore() *Store {
	return &Store{
		route:         RouteSplash,
		editCartIndex: -1,
	}
}

// Snapshot returns a consistent copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]cart.Line, len(s.cartLines))
	copy(lines, s.cartLines)

	return Snapshot{
		Route:            s.route,
		Footer:           s.footer,
		SessionActive:    s.sessionKey != "",
		IdleWarning:      s.idleWarning,
		IdleCountdown:    s.idleCountdown,
		ServiceType:      s.serviceType,
		Cart:             lines,
		CartTotal:        cart.Total(lines),
		CartCount:        cart.Count(lines),
		ProductID:        s.productID,
		EditCartIndex:    s.editCartIndex,
		PaymentMethod:    s.paymentMethod,
		PaymentCountdown: s.paymentCountdown,
		Printing:         s.printing,
		OrderID:          s.orderID,
		OrderNo:          s.orderNo,
		LastReceipt:      s.lastReceipt,
	}
}

// Go navigates to a screen and stamps the footer with it. Unknown routes
// fall back to the splash screen.
func (s *Store) Go(r Route) Route {
	r = Normalize(r)
	s.mu.Lock()
	s.route = r
	s.footer = "Open: " + string(r)
	s.mu.Unlock()
	return r
}

// Route returns the current screen
func (s *Store) Route() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// SetFooter overwrites the footer line shown at the bottom of every screen
func (s *Store) SetFooter(msg string) {
	s.mu.Lock()
	s.footer = msg
	s.mu.Unlock()
}

// Session

func (s *Store) SessionKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionKey
}

func (s *Store) SetSessionKey(key string) {
	s.mu.Lock()
	s.sessionKey = key
	s.mu.Unlock()
}

// SetIdleWarning shows or hides the idle overlay with its countdown
func (s *Store) SetIdleWarning(on bool, countdown int) {
	s.mu.Lock()
	s.idleWarning = on
	s.idleCountdown = countdown
	s.mu.Unlock()
}

// IdleWarning reports whether the idle overlay is showing
func (s *Store) IdleWarning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idleWarning
}

// Service type

func (s *Store) ServiceType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceType
}

func (s *Store) SetServiceType(t string) {
	s.mu.Lock()
	s.serviceType = t
	s.mu.Unlock()
}

// Cart

// CartLines returns a copy of the cart
func (s *Store) CartLines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]cart.Line, len(s.cartLines))
	copy(lines, s.cartLines)
	return lines
}

// CommitLine places a composed line, overwriting the slot being edited when
// one is armed, and disarms edit mode either way
func (s *Store) CommitLine(line cart.Line) {
	s.mu.Lock()
	s.cartLines = cart.Commit(s.cartLines, line, s.editCartIndex)
	s.editCartIndex = -1
	s.productID = 0
	s.mu.Unlock()
}

// AdjustQty applies a quantity delta to one line, clamped to the legal range
func (s *Store) AdjustQty(index, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.cartLines) {
		return
	}
	line := s.cartLines[index]
	line.Qty = cart.ClampQty(line.Qty + delta)
	line.Recalc()
	s.cartLines[index] = line
}

// RemoveLine deletes one cart line
func (s *Store) RemoveLine(index int) {
	s.mu.Lock()
	s.cartLines = cart.Remove(s.cartLines, index)
	s.mu.Unlock()
}

// ClearCart empties the cart
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cartLines = nil
	s.mu.Unlock()
}

// Product-variant screen context

// ArmProduct opens the variant screen for a product. editIndex >= 0 arms
// edit mode against that cart slot; pass -1 for a fresh line.
func (s *Store) ArmProduct(productID int64, editIndex int) {
	s.mu.Lock()
	s.productID = productID
	s.editCartIndex = editIndex
	s.mu.Unlock()
}

func (s *Store) ProductID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productID
}

func (s *Store) EditCartIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editCartIndex
}

// Payment

func (s *Store) SetPaymentMethod(m string) {
	s.mu.Lock()
	s.paymentMethod = m
	s.mu.Unlock()
}

func (s *Store) PaymentMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethod
}

func (s *Store) SetPaymentCountdown(sec int) {
	s.mu.Lock()
	s.paymentCountdown = sec
	s.mu.Unlock()
}

func (s *Store) SetPrinting(on bool) {
	s.mu.Lock()
	s.printing = on
	s.mu.Unlock()
}

// Order reference

func (s *Store) SetOrder(id int64, no string) {
	s.mu.Lock()
	s.orderID = id
	s.orderNo = no
	s.mu.Unlock()
}

func (s *Store) OrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

func (s *Store) OrderNo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderNo
}

// ClearOrder drops the active order reference
func (s *Store) ClearOrder() {
	s.mu.Lock()
	s.orderID = 0
	s.orderNo = ""
	s.mu.Unlock()
}

// Receipt

func (s *Store) SetLastReceipt(p *receipt.Payload) {
	s.mu.Lock()
	s.lastReceipt = p
	s.mu.Unlock()
}

func (s *Store) LastReceipt() *receipt.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReceipt
}

// ResetOrdering clears every per-customer transient and parks the kiosk on
// the splash screen. The session key is cleared too; managers own closing
// the backend session before or after calling this.
func (s *Store) ResetOrdering() {
	s.mu.Lock()
	s.sessionKey = ""
	s.idleWarning = false
	s.idleCountdown = 0
	s.serviceType = ""
	s.cartLines = nil
	s.productID = 0
	s.editCartIndex = -1
	s.paymentMethod = ""
	s.paymentCountdown = 0
	s.printing = false
	s.orderID = 0
	s.orderNo = ""
	s.route = RouteSplash
	s.footer = "Open: " + string(RouteSplash)
	s.mu.Unlock()
}
