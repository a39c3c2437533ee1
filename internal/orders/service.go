package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"kioskd/internal/bridge"
	"kioskd/internal/cart"
	"kioskd/internal/receipt"
	"kioskd/internal/shared/config"
	"kioskd/internal/state"
	"kioskd/pkg/logger"
	"kioskd/pkg/metrics"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNoServiceType  = errors.New("service type not selected")
	ErrNoActiveOrder  = errors.New("no active order")
	ErrOrderCancelled = errors.New("order already cancelled")
	ErrBadMethod      = errors.New("unknown payment method")
)

// bridgeClient is the slice of the RPC bridge the order flow needs
type bridgeClient interface {
	CreateOrder(ctx context.Context, req bridge.CreateOrderRequest) (*bridge.OrderRef, error)
	GetOrder(ctx context.Context, orderID int64) (*bridge.Order, error)
	SetPaymentType(ctx context.Context, orderID int64, paymentType string) error
	MarkPaid(ctx context.Context, orderID int64) error
	MarkPrinted(ctx context.Context, orderID int64) error
	CancelOrder(ctx context.Context, orderID int64) error
}

// paymentTimer is the payment countdown the order flow drives
type paymentTimer interface {
	Start(route state.Route)
	Stop()
	SetPrinting(on bool)
}

// sessionResetter converges the kiosk back to the splash screen
type sessionResetter interface {
	ForceResetToSplash(ctx context.Context, reason string)
}

type Service interface {
	// Checkout submits the cart and moves to payment method selection
	Checkout(ctx context.Context) (*bridge.OrderRef, error)

	// SelectPaymentMethod records the method on the backend and opens the
	// matching payment screen with a fresh countdown
	SelectPaymentMethod(ctx context.Context, method string) error

	// ConfirmAndPrint drives paid -> snapshot -> print -> printed and lands
	// on the receipt screen
	ConfirmAndPrint(ctx context.Context) error

	// CancelPayment abandons the active order and resets the kiosk
	CancelPayment(ctx context.Context) error

	// Back leaves the payment screen for method selection, keeping the order
	Back(ctx context.Context) error

	// Done leaves the receipt screen immediately
	Done(ctx context.Context)

	// Snapshot fetches the authoritative order, refusing cancelled orders
	Snapshot(ctx context.Context) (*bridge.Order, error)
}

type service struct {
	store    *state.Store
	bridge   bridgeClient
	printer  receipt.Printer
	payments paymentTimer
	sessions sessionResetter
	cfg      config.KioskConfig
	log      *logger.Logger

	mu          sync.Mutex
	returnTimer *time.Timer
}

func NewService(store *state.Store, b bridgeClient, printer receipt.Printer, payments paymentTimer, sessions sessionResetter, cfg config.KioskConfig, log *logger.Logger) Service {
	return &service{
		store:    store,
		bridge:   b,
		printer:  printer,
		payments: payments,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

// Checkout submits only the authoritative cart fields; the backend reprices
// every line. A rejection leaves the kiosk on the cart screen with the
// reason on the footer.
func (s *service) Checkout(ctx context.Context) (*bridge.OrderRef, error) {
	lines := s.store.CartLines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	serviceType := s.store.ServiceType()
	if serviceType == "" {
		return nil, ErrNoServiceType
	}

	req := bridge.CreateOrderRequest{
		SessionKey:  s.store.SessionKey(),
		ServiceType: serviceType,
		Items:       checkoutItems(lines),
	}

	ref, err := s.bridge.CreateOrder(ctx, req)
	if err != nil {
		metrics.RecordOrderOperation("create", false)
		s.store.SetFooter(bridge.UserMessage(err, "Could not create order"))
		return nil, err
	}

	metrics.RecordOrderOperation("create", true)
	s.log.LogOrderCreated(ctx, ref.OrderID, ref.OrderNo, serviceType)
	s.store.SetOrder(ref.OrderID, ref.OrderNo)
	s.store.Go(state.RoutePaymentMethod)
	return ref, nil
}

func checkoutItems(lines []cart.Line) []bridge.CartItem {
	items := make([]bridge.CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, bridge.CartItem{
			ProductID:       l.ProductID,
			Qty:             l.Qty,
			VariantValueIDs: l.VariantValueIDs,
		})
	}
	return items
}

// SelectPaymentMethod maps the UI method name onto the wire payment type,
// records it, re-fetches the authoritative snapshot, and opens the payment
// screen with a fresh countdown
func (s *service) SelectPaymentMethod(ctx context.Context, method string) error {
	orderID := s.store.OrderID()
	if orderID == 0 {
		return ErrNoActiveOrder
	}

	var wireType string
	var route state.Route
	switch method {
	case "counter":
		wireType, route = "counter", state.RoutePayCounter
	case "qrcode", "qr":
		wireType, route = "qr", state.RoutePaymentQR
	default:
		return ErrBadMethod
	}

	if err := s.bridge.SetPaymentType(ctx, orderID, wireType); err != nil {
		s.store.SetFooter(bridge.UserMessage(err, "Could not set payment method"))
		return err
	}

	if _, err := s.Snapshot(ctx); err != nil {
		s.store.SetFooter(bridge.UserMessage(err, "Could not load order"))
		return err
	}

	s.store.SetPaymentMethod(wireType)
	s.store.Go(route)
	s.payments.Start(route)
	return nil
}

// ConfirmAndPrint is the strict settlement sequence: mark paid, fetch the
// snapshot, print from it, then mark printed. The countdown pauses while
// printing; a failure before the receipt screen restores a full budget so
// the customer can retry.
func (s *service) ConfirmAndPrint(ctx context.Context) error {
	orderID := s.store.OrderID()
	if orderID == 0 {
		return ErrNoActiveOrder
	}
	route := s.store.Route()

	s.payments.SetPrinting(true)
	defer s.payments.SetPrinting(false)

	if err := s.bridge.MarkPaid(ctx, orderID); err != nil {
		metrics.RecordOrderOperation("mark_paid", false)
		s.store.SetFooter(bridge.UserMessage(err, "Payment confirmation failed"))
		s.payments.Start(route)
		return err
	}
	metrics.RecordOrderOperation("mark_paid", true)

	order, err := s.Snapshot(ctx)
	if err != nil {
		s.store.SetFooter(bridge.UserMessage(err, "Could not load order"))
		s.payments.Start(route)
		return err
	}

	payload := receipt.FromOrder(order)
	if err := s.printer.Print(ctx, payload); err != nil {
		metrics.RecordOrderOperation("print", false)
		s.log.LogReceiptPrinted(ctx, order.OrderNo, err)
		s.store.SetFooter(bridge.UserMessage(err, "Printing failed. Please try again."))
		s.payments.Start(route)
		return err
	}
	metrics.RecordOrderOperation("print", true)
	s.log.LogReceiptPrinted(ctx, order.OrderNo, nil)

	// The customer already holds the ticket; a failure here is recorded and
	// reconciled on the backend later, never surfaced.
	if err := s.bridge.MarkPrinted(ctx, orderID); err != nil {
		metrics.RecordOrderOperation("mark_printed", false)
		s.log.Warn("Mark printed failed after successful print", "order_id", orderID, "error", err)
	} else {
		metrics.RecordOrderOperation("mark_printed", true)
	}

	s.payments.Stop()
	s.store.SetLastReceipt(payload)
	s.store.ClearCart()
	s.store.Go(state.RouteReceipt)
	s.armAutoReturn()
	return nil
}

// CancelPayment abandons the order on explicit customer cancel
func (s *service) CancelPayment(ctx context.Context) error {
	s.payments.Stop()

	if orderID := s.store.OrderID(); orderID != 0 {
		if err := s.bridge.CancelOrder(ctx, orderID); err != nil {
			metrics.RecordOrderOperation("cancel", false)
			s.log.Warn("Order cancel failed", "order_id", orderID, "error", err)
		} else {
			metrics.RecordOrderOperation("cancel", true)
			s.log.LogOrderCancelled(ctx, orderID, "customer cancelled")
		}
	}

	s.sessions.ForceResetToSplash(ctx, "payment cancelled")
	return nil
}

// Back returns to method selection. The order stays alive; no cancel.
func (s *service) Back(ctx context.Context) error {
	if s.store.OrderID() == 0 {
		return ErrNoActiveOrder
	}
	s.payments.Stop()
	s.store.Go(state.RoutePaymentMethod)
	return nil
}

// Done ends the receipt screen early
func (s *service) Done(ctx context.Context) {
	s.disarmAutoReturn()
	s.sessions.ForceResetToSplash(ctx, "receipt done")
}

// Snapshot fetches the authoritative order record. Cancelled orders are
// refused so no downstream step works from a dead order.
func (s *service) Snapshot(ctx context.Context) (*bridge.Order, error) {
	orderID := s.store.OrderID()
	if orderID == 0 {
		return nil, ErrNoActiveOrder
	}

	order, err := s.bridge.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if Status(order.Status) == StatusCancelled {
		return nil, ErrOrderCancelled
	}
	return order, nil
}

// armAutoReturn schedules the receipt screen's automatic return to splash
func (s *service) armAutoReturn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.returnTimer != nil {
		s.returnTimer.Stop()
	}
	s.returnTimer = time.AfterFunc(s.cfg.ReceiptReturn, func() {
		if s.store.Route() != state.RouteReceipt {
			return
		}
		s.sessions.ForceResetToSplash(context.Background(), "receipt auto return")
	})
}

func (s *service) disarmAutoReturn() {
	s.mu.Lock()
	if s.returnTimer != nil {
		s.returnTimer.Stop()
		s.returnTimer = nil
	}
	s.mu.Unlock()
}
