package catalog

import (
	"kioskd/internal/bridge"
	"kioskd/internal/cart"
)

// ProductOptionsResponse is the variant screen payload for one product
type ProductOptionsResponse struct {
	Product bridge.Product      `json:"product"`
	Groups  []cart.VariantGroup `json:"groups"`
}
