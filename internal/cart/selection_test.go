package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroups() []VariantGroup {
	return []VariantGroup{
		{
			ID: 1, Name: "Size", IsRequired: true, MaxSelect: 1,
			Values: []VariantValue{
				{ID: 11, GroupID: 1, Name: "Small", ExtraPrice: 0},
				{ID: 12, GroupID: 1, Name: "Large", ExtraPrice: 1.5},
			},
		},
		{
			ID: 2, Name: "Toppings", IsRequired: false, MaxSelect: 2,
			Values: []VariantValue{
				{ID: 21, GroupID: 2, Name: "Cheese", ExtraPrice: 0.5},
				{ID: 22, GroupID: 2, Name: "Bacon", ExtraPrice: 1.0},
				{ID: 23, GroupID: 2, Name: "Onion", ExtraPrice: 0.25},
			},
		},
	}
}

func TestToggleRadioReplacesPriorPick(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Toggle(1, 11)
	assert.Equal(t, []int64{11}, sel.Picked(1))

	sel.Toggle(1, 12)
	assert.Equal(t, []int64{12}, sel.Picked(1))
}

func TestToggleMultiSelectRespectsCap(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Toggle(2, 21)
	sel.Toggle(2, 22)
	assert.Equal(t, []int64{21, 22}, sel.Picked(2))

	// At cap: a third pick is silently refused
	sel.Toggle(2, 23)
	assert.Equal(t, []int64{21, 22}, sel.Picked(2))

	// Toggling a picked value removes it, freeing a slot
	sel.Toggle(2, 21)
	assert.Equal(t, []int64{22}, sel.Picked(2))
	sel.Toggle(2, 23)
	assert.Equal(t, []int64{22, 23}, sel.Picked(2))
}

func TestToggleUnknownIDsAreNoOps(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Toggle(99, 11)
	sel.Toggle(1, 999)
	assert.Empty(t, sel.ValueIDs())
}

func TestValidateRequiredGroups(t *testing.T) {
	sel := NewSelection(testGroups())

	err := sel.Validate()
	require.Error(t, err)
	assert.Equal(t, "please select Size", err.Error())

	sel.Toggle(1, 11)
	assert.NoError(t, sel.Validate())
}

func TestPreloadAssignsValuesToGroups(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Preload([]int64{12, 21, 22})
	assert.Equal(t, []int64{12}, sel.Picked(1))
	assert.Equal(t, []int64{21, 22}, sel.Picked(2))
	assert.NoError(t, sel.Validate())
}

func TestPreloadDropsStaleAndDuplicateIDs(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Preload([]int64{11, 11, 777})
	assert.Equal(t, []int64{11}, sel.Picked(1))
	assert.Empty(t, sel.Picked(2))
}

func TestValueIDsDeduplicatedInGroupOrder(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Toggle(2, 22)
	sel.Toggle(1, 11)
	sel.Toggle(2, 21)

	assert.Equal(t, []int64{11, 22, 21}, sel.ValueIDs())
}

func TestExtrasTotalAndSelectedVariants(t *testing.T) {
	sel := NewSelection(testGroups())

	sel.Toggle(1, 12)
	sel.Toggle(2, 21)

	assert.Equal(t, 2.0, sel.ExtrasTotal())

	variants := sel.SelectedVariants()
	require.Len(t, variants, 2)
	assert.Equal(t, "Size", variants[0].GroupName)
	assert.Equal(t, "Large", variants[0].ValueName)
	assert.Equal(t, "Toppings", variants[1].GroupName)
	assert.Equal(t, 0.5, variants[1].ExtraPrice)
}

func TestNewLineFromSelection(t *testing.T) {
	sel := NewSelection(testGroups())
	sel.Toggle(1, 12)
	sel.Toggle(2, 21)

	line := NewLine(5, "Burger", "/img/burger.png", 10.0, 2, sel)

	assert.Equal(t, int64(5), line.ProductID)
	assert.Equal(t, []int64{12, 21}, line.VariantValueIDs)
	assert.Equal(t, 2, line.Qty)
	// (10.0 + 1.5 + 0.5) * 2
	assert.Equal(t, 24.0, line.LineTotal)
	assert.Len(t, line.Variants, 2)
}
