package kiosk

import (
	"context"
	"errors"

	"kioskd/internal/cart"
	"kioskd/internal/catalog"
	"kioskd/internal/state"
	"kioskd/pkg/logger"
)

var (
	ErrBadServiceType = errors.New("unknown service type")
	ErrBadCartIndex   = errors.New("cart index out of range")
)

// sessionManager is the part of the session lifecycle the screen flow drives
type sessionManager interface {
	OrderNow(ctx context.Context) error
	Activity(ctx context.Context)
	RouteChanged(route state.Route)
}

// paymentTimer lets payment screen activity restore the countdown budget
type paymentTimer interface {
	Activity()
}

// Service is the screen flow: everything the UI can do outside of checkout
// and payment settlement.
type Service interface {
	// State returns the full UI snapshot
	State() state.Snapshot

	// Activity registers a customer interaction with whichever watchdog
	// governs the current screen
	Activity(ctx context.Context)

	// Navigate changes the active screen
	Navigate(ctx context.Context, route state.Route) state.Route

	// OrderNow starts a session from the splash screen
	OrderNow(ctx context.Context) error

	// SelectService records dine_in or take_away and opens the menu
	SelectService(ctx context.Context, serviceType string) error

	// OpenProduct opens the variant screen for a fresh line
	OpenProduct(ctx context.Context, productID int64) error

	// CommitLine validates a selection and places the composed line,
	// honoring an armed cart edit
	CommitLine(ctx context.Context, productID int64, qty int, valueIDs []int64) error

	// AdjustQty applies a quantity delta to a cart line
	AdjustQty(index, delta int) error

	// RemoveLine deletes a cart line
	RemoveLine(index int) error

	// EditLine reopens the variant screen against an existing cart line
	EditLine(ctx context.Context, index int) error
}

type service struct {
	store    *state.Store
	sessions sessionManager
	payments paymentTimer
	catalog  catalog.Service
	log      *logger.Logger
}

func NewService(store *state.Store, sessions sessionManager, payments paymentTimer, catalogService catalog.Service, log *logger.Logger) Service {
	return &service{
		store:    store,
		sessions: sessions,
		payments: payments,
		catalog:  catalogService,
		log:      log,
	}
}

func (s *service) State() state.Snapshot {
	return s.store.Snapshot()
}

func (s *service) Activity(ctx context.Context) {
	route := s.store.Route()
	if state.IsPaymentPage(route) {
		s.payments.Activity()
		return
	}
	s.sessions.Activity(ctx)
}

func (s *service) Navigate(ctx context.Context, route state.Route) state.Route {
	// The menu is unreachable until a service type has been chosen
	if state.Normalize(route) == state.RouteMenu && s.store.ServiceType() == "" {
		applied := s.store.Go(state.RouteService)
		s.store.SetFooter("Select service first")
		s.sessions.RouteChanged(applied)
		return applied
	}

	applied := s.store.Go(route)
	s.sessions.RouteChanged(applied)
	return applied
}

func (s *service) OrderNow(ctx context.Context) error {
	return s.sessions.OrderNow(ctx)
}

func (s *service) SelectService(ctx context.Context, serviceType string) error {
	switch serviceType {
	case "dine_in", "take_away":
	default:
		return ErrBadServiceType
	}

	s.store.SetServiceType(serviceType)
	s.Navigate(ctx, state.RouteMenu)
	return nil
}

func (s *service) OpenProduct(ctx context.Context, productID int64) error {
	if _, err := s.catalog.ProductOptions(ctx, productID); err != nil {
		return err
	}
	s.store.ArmProduct(productID, -1)
	s.Navigate(ctx, state.RouteProductVariant)
	return nil
}

// CommitLine rebuilds the selection server-side from the submitted value ids
// and validates it; the UI's own selection state is never trusted
func (s *service) CommitLine(ctx context.Context, productID int64, qty int, valueIDs []int64) error {
	options, err := s.catalog.ProductOptions(ctx, productID)
	if err != nil {
		return err
	}

	sel := cart.NewSelection(options.Groups)
	sel.Preload(valueIDs)
	if err := sel.Validate(); err != nil {
		return err
	}

	editing := s.store.EditCartIndex() >= 0
	line := cart.NewLine(productID, options.Product.Name, options.Product.ImageURL,
		options.Product.BasePrice, qty, sel)
	s.store.CommitLine(line)

	if editing {
		s.Navigate(ctx, state.RouteCart)
	} else {
		s.Navigate(ctx, state.RouteMenu)
	}
	return nil
}

func (s *service) AdjustQty(index, delta int) error {
	if index < 0 || index >= len(s.store.CartLines()) {
		return ErrBadCartIndex
	}
	s.store.AdjustQty(index, delta)
	return nil
}

func (s *service) RemoveLine(index int) error {
	if index < 0 || index >= len(s.store.CartLines()) {
		return ErrBadCartIndex
	}
	s.store.RemoveLine(index)
	return nil
}

func (s *service) EditLine(ctx context.Context, index int) error {
	lines := s.store.CartLines()
	if index < 0 || index >= len(lines) {
		return ErrBadCartIndex
	}

	s.store.ArmProduct(lines[index].ProductID, index)
	s.Navigate(ctx, state.RouteProductVariant)
	return nil
}
