package cart

// Quantity bounds for a single cart line
const (
	MinQty = 1
	MaxQty = 99
)

// Line is one cart entry. Only ProductID, Qty and VariantValueIDs are
// authoritative for checkout; every other field travels for display only and
// is never trusted for totals.
type Line struct {
	ProductID       int64   `json:"product_id"`
	Qty             int     `json:"qty"`
	VariantValueIDs []int64 `json:"variant_value_ids"`

	// Display-only fields
	Name      string            `json:"name"`
	ImageURL  string            `json:"image_url,omitempty"`
	BasePrice float64           `json:"base_price"`
	Variants  []SelectedVariant `json:"variants,omitempty"`
	LineTotal float64           `json:"line_total"`
}

// SelectedVariant is the display record of one picked option value
type SelectedVariant struct {
	GroupID    int64   `json:"group_id"`
	GroupName  string  `json:"group_name"`
	ValueID    int64   `json:"value_id"`
	ValueName  string  `json:"value_name"`
	ExtraPrice float64 `json:"extra_price"`
}

// ClampQty clamps a quantity into [MinQty, MaxQty]
func ClampQty(q int) int {
	if q < MinQty {
		return MinQty
	}
	if q > MaxQty {
		return MaxQty
	}
	return q
}

// Recalc recomputes the advisory line total:
// (base_price + sum of selected extras) * qty.
// Calling it twice with no intervening change yields the same value.
func (l *Line) Recalc() {
	l.Qty = ClampQty(l.Qty)

	extras := 0.0
	for _, v := range l.Variants {
		extras += v.ExtraPrice
	}
	l.LineTotal = (l.BasePrice + extras) * float64(l.Qty)
}

// NewLine composes a cart line for a product from a completed selection.
// The caller must Validate the selection first.
func NewLine(productID int64, name, imageURL string, basePrice float64, qty int, sel *Selection) Line {
	line := Line{
		ProductID:       productID,
		Qty:             ClampQty(qty),
		VariantValueIDs: sel.ValueIDs(),
		Name:            name,
		ImageURL:        imageURL,
		BasePrice:       basePrice,
		Variants:        sel.SelectedVariants(),
	}
	line.Recalc()
	return line
}

// Total folds the advisory line totals of the given lines.
// The backend-returned order total is authoritative after checkout.
func Total(lines []Line) float64 {
	sum := 0.0
	for _, l := range lines {
		sum += l.LineTotal
	}
	return sum
}

// Count folds the quantities of the given lines
func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Qty
	}
	return n
}

// Commit places a composed line into the cart. A valid editIndex overwrites
// that slot in place, preserving ordering; any other value appends.
func Commit(lines []Line, line Line, editIndex int) []Line {
	if editIndex >= 0 && editIndex < len(lines) {
		out := make([]Line, len(lines))
		copy(out, lines)
		out[editIndex] = line
		return out
	}
	return append(lines, line)
}

// Remove deletes the line at index; an out-of-range index is a no-op
func Remove(lines []Line, index int) []Line {
	if index < 0 || index >= len(lines) {
		return lines
	}
	return append(lines[:index:index], lines[index+1:]...)
}
