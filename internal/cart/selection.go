package cart

import "fmt"

// VariantGroup is a read-only option group scoped to one product
type VariantGroup struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	IsRequired bool           `json:"is_required"`
	MaxSelect  int            `json:"max_select"`
	Values     []VariantValue `json:"values"`
}

// VariantValue is one selectable option value
type VariantValue struct {
	ID         int64   `json:"id"`
	GroupID    int64   `json:"group_id"`
	Name       string  `json:"name"`
	ExtraPrice float64 `json:"extra_price"`
}

// Selection tracks picked option values per group for one product.
// max_select == 1 groups use radio semantics; larger caps toggle membership
// and silently refuse additions beyond the cap.
type Selection struct {
	groups []VariantGroup
	picked map[int64][]int64 // group id -> picked value ids, in pick order
}

// NewSelection creates an empty selection over the product's groups
func NewSelection(groups []VariantGroup) *Selection {
	picked := make(map[int64][]int64, len(groups))
	for _, g := range groups {
		picked[g.ID] = nil
	}
	return &Selection{groups: groups, picked: picked}
}

func (s *Selection) group(groupID int64) *VariantGroup {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			return &s.groups[i]
		}
	}
	return nil
}

func (s *Selection) value(g *VariantGroup, valueID int64) *VariantValue {
	for i := range g.Values {
		if g.Values[i].ID == valueID {
			return &g.Values[i]
		}
	}
	return nil
}

// Toggle applies one pick to a group. Unknown group or value ids are no-ops.
func (s *Selection) Toggle(groupID, valueID int64) {
	g := s.group(groupID)
	if g == nil || s.value(g, valueID) == nil {
		return
	}

	cur := s.picked[groupID]

	// Radio semantics: the new pick replaces any prior one
	max := g.MaxSelect
	if max <= 1 {
		s.picked[groupID] = []int64{valueID}
		return
	}

	// Toggle membership, refusing to grow past the cap
	for i, id := range cur {
		if id == valueID {
			s.picked[groupID] = append(cur[:i:i], cur[i+1:]...)
			return
		}
	}
	if len(cur) >= max {
		return // silent no-op at cap
	}
	s.picked[groupID] = append(cur, valueID)
}

// Picked returns the picked value ids for a group
func (s *Selection) Picked(groupID int64) []int64 {
	return s.picked[groupID]
}

// Preload seeds the selection from a cart line's value ids (edit mode).
// Each id is assigned to the group that actually contains it; stale ids are
// dropped.
func (s *Selection) Preload(valueIDs []int64) {
	for _, g := range s.groups {
		s.picked[g.ID] = nil
	}
	seen := make(map[int64]bool, len(valueIDs))
	for _, vid := range valueIDs {
		if seen[vid] {
			continue
		}
		seen[vid] = true
		for i := range s.groups {
			g := &s.groups[i]
			if s.value(g, vid) != nil {
				s.picked[g.ID] = append(s.picked[g.ID], vid)
				break
			}
		}
	}
}

// Validate checks that every required group has a non-empty selection,
// returning a human-readable reason naming the first missing group.
func (s *Selection) Validate() error {
	for _, g := range s.groups {
		if g.IsRequired && len(s.picked[g.ID]) == 0 {
			return fmt.Errorf("please select %s", g.Name)
		}
	}
	return nil
}

// ValueIDs returns the de-duplicated picked value ids across all groups,
// in group order
func (s *Selection) ValueIDs() []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, g := range s.groups {
		for _, vid := range s.picked[g.ID] {
			if seen[vid] {
				continue
			}
			seen[vid] = true
			out = append(out, vid)
		}
	}
	return out
}

// ExtrasTotal sums the extra prices of all picked values
func (s *Selection) ExtrasTotal() float64 {
	sum := 0.0
	for _, v := range s.SelectedVariants() {
		sum += v.ExtraPrice
	}
	return sum
}

// SelectedVariants expands the picked ids into display records
func (s *Selection) SelectedVariants() []SelectedVariant {
	var out []SelectedVariant
	for i := range s.groups {
		g := &s.groups[i]
		for _, vid := range s.picked[g.ID] {
			v := s.value(g, vid)
			if v == nil {
				continue
			}
			out = append(out, SelectedVariant{
				GroupID:    g.ID,
				GroupName:  g.Name,
				ValueID:    v.ID,
				ValueName:  v.Name,
				ExtraPrice: v.ExtraPrice,
			})
		}
	}
	return out
}
