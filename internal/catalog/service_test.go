package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kioskd/internal/bridge"
)

type fakeMenuBridge struct {
	mu    sync.Mutex
	menu  *bridge.Menu
	err   error
	loads int
}

func (f *fakeMenuBridge) LoadMenu(ctx context.Context) (*bridge.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.menu, nil
}

func (f *fakeMenuBridge) Ready() bool { return true }

func sampleMenu() *bridge.Menu {
	return &bridge.Menu{
		Categories: []bridge.Category{{ID: 1, Name: "Food"}},
		SubByCat: map[string][]bridge.SubCategory{
			"1": {{ID: 10, CategoryID: 1, Name: "Burgers"}},
		},
		ProdBySub: map[string][]bridge.Product{
			"10": {{ID: 5, SubCategoryID: 10, Name: "Burger", BasePrice: 10.0}},
		},
		GroupByProduct: map[string][]bridge.VariantGroup{
			"5": {
				{ID: 1, ProductID: 5, Name: "Size", IsRequired: 1, MaxSelect: 1},
				{ID: 2, ProductID: 5, Name: "Toppings", IsRequired: 0, MaxSelect: 2},
			},
		},
		ValueByGroup: map[string][]bridge.VariantValue{
			"1": {
				{ID: 11, GroupID: 1, Name: "Small", ExtraPrice: 0},
				{ID: 12, GroupID: 1, Name: "Large", ExtraPrice: 1.5},
			},
			"2": {
				{ID: 21, GroupID: 2, Name: "Cheese", ExtraPrice: 0.5},
			},
		},
	}
}

func TestMenuWithoutCacheHitsBridgeEveryTime(t *testing.T) {
	fb := &fakeMenuBridge{menu: sampleMenu()}
	svc := NewService(fb, nil, 0)

	_, err := svc.Menu(context.Background())
	require.NoError(t, err)
	_, err = svc.Menu(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, fb.loads)
}

func TestMenuPropagatesBridgeErrors(t *testing.T) {
	fb := &fakeMenuBridge{err: bridge.ErrUnavailable}
	svc := NewService(fb, nil, 0)

	_, err := svc.Menu(context.Background())
	assert.True(t, bridge.IsUnavailable(err))
}

func TestProductOptionsConversion(t *testing.T) {
	fb := &fakeMenuBridge{menu: sampleMenu()}
	svc := NewService(fb, nil, 0)

	options, err := svc.ProductOptions(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "Burger", options.Product.Name)
	require.Len(t, options.Groups, 2)

	size := options.Groups[0]
	assert.Equal(t, "Size", size.Name)
	assert.True(t, size.IsRequired)
	assert.Equal(t, 1, size.MaxSelect)
	require.Len(t, size.Values, 2)
	assert.Equal(t, "Large", size.Values[1].Name)
	assert.Equal(t, 1.5, size.Values[1].ExtraPrice)

	toppings := options.Groups[1]
	assert.False(t, toppings.IsRequired)
	assert.Equal(t, 2, toppings.MaxSelect)
	require.Len(t, toppings.Values, 1)
}

func TestProductOptionsUnknownProduct(t *testing.T) {
	fb := &fakeMenuBridge{menu: sampleMenu()}
	svc := NewService(fb, nil, 0)

	_, err := svc.ProductOptions(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOptionGroupsForProductWithoutVariants(t *testing.T) {
	menu := sampleMenu()
	assert.Empty(t, OptionGroups(menu, 777))
}
