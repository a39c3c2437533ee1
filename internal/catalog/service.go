package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"kioskd/internal/bridge"
	"kioskd/internal/cart"
	"kioskd/pkg/cache"
)

const menuCacheKey = "kioskd:menu"

// ErrProductNotFound means the product id is absent from the menu snapshot
var ErrProductNotFound = errors.New("product not found")

// bridgeClient is the slice of the RPC bridge the catalog needs
type bridgeClient interface {
	LoadMenu(ctx context.Context) (*bridge.Menu, error)
	Ready() bool
}

type Service interface {
	// Menu returns the full menu snapshot, served from cache when warm
	Menu(ctx context.Context) (*bridge.Menu, error)

	// ProductOptions resolves a product and its selectable option groups
	ProductOptions(ctx context.Context, productID int64) (*ProductOptionsResponse, error)

	// Invalidate drops the cached menu snapshot
	Invalidate(ctx context.Context)
}

type service struct {
	bridge bridgeClient
	cache  cache.Service
	ttl    time.Duration
}

// NewService creates a catalog service. cacheService may be nil; the catalog
// then always round-trips to the backend.
func NewService(b bridgeClient, cacheService cache.Service, ttl time.Duration) Service {
	return &service{bridge: b, cache: cacheService, ttl: ttl}
}

func (s *service) Menu(ctx context.Context) (*bridge.Menu, error) {
	if s.cache == nil {
		return s.bridge.LoadMenu(ctx)
	}

	var menu bridge.Menu
	err := s.cache.GetOrSet(ctx, menuCacheKey, s.ttl, func() (interface{}, error) {
		return s.bridge.LoadMenu(ctx)
	}, &menu)
	if err != nil {
		// GetOrSet wraps the fetcher's error, so the bridge taxonomy
		// still matches through errors.Is/As
		return nil, err
	}
	return &menu, nil
}

func (s *service) ProductOptions(ctx context.Context, productID int64) (*ProductOptionsResponse, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return nil, err
	}

	product := findProduct(menu, productID)
	if product == nil {
		return nil, ErrProductNotFound
	}

	return &ProductOptionsResponse{
		Product: *product,
		Groups:  OptionGroups(menu, productID),
	}, nil
}

func (s *service) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, menuCacheKey)
	}
}

func findProduct(menu *bridge.Menu, productID int64) *bridge.Product {
	for _, products := range menu.ProdBySub {
		for i := range products {
			if products[i].ID == productID {
				return &products[i]
			}
		}
	}
	return nil
}

// OptionGroups converts a product's wire-format option groups into the
// selection model, resolving the 0/1 required flag and attaching each
// group's values.
func OptionGroups(menu *bridge.Menu, productID int64) []cart.VariantGroup {
	wireGroups := menu.GroupByProduct[strconv.FormatInt(productID, 10)]
	groups := make([]cart.VariantGroup, 0, len(wireGroups))

	for _, wg := range wireGroups {
		g := cart.VariantGroup{
			ID:         wg.ID,
			Name:       wg.Name,
			IsRequired: wg.IsRequired != 0,
			MaxSelect:  wg.MaxSelect,
		}
		for _, wv := range menu.ValueByGroup[strconv.FormatInt(wg.ID, 10)] {
			g.Values = append(g.Values, cart.VariantValue{
				ID:         wv.ID,
				GroupID:    wv.GroupID,
				Name:       wv.Name,
				ExtraPrice: wv.ExtraPrice,
			})
		}
		groups = append(groups, g)
	}
	return groups
}
