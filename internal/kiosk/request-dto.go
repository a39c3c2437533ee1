package kiosk

// NavigateRequest changes the active screen. Unknown routes land on splash.
type NavigateRequest struct {
	Route string `json:"route" binding:"required"`
}

// ServiceRequest records how the customer wants the order served
type ServiceRequest struct {
	ServiceType string `json:"service_type" binding:"required,oneof=dine_in take_away"`
}

// OpenProductRequest opens the variant screen for a product
type OpenProductRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// CommitLineRequest places a composed line into the cart. The selection is
// re-validated against the catalog; prices never travel here.
type CommitLineRequest struct {
	ProductID       int64   `json:"product_id" binding:"required,gt=0"`
	Qty             int     `json:"qty" binding:"required,min=1,max=99"`
	VariantValueIDs []int64 `json:"variant_value_ids"`
}

// QtyRequest applies a quantity delta to one cart line
type QtyRequest struct {
	Delta int `json:"delta" binding:"required"`
}
