package bridge

// Wire types exchanged with the order backend. Field names follow the
// backend's JSON envelope exactly; the kiosk never mutates these records,
// it only triggers transitions and re-fetches snapshots.

// SessionData is the result of session_start
type SessionData struct {
	SessionKey   string `json:"session_key"`
	ExpiresInSec int    `json:"expires_in_sec"`
}

// TouchData is the result of session_touch. Status is the backend's view of
// the session: "ACTIVE" or a terminal state such as "EXPIRED"/"CLOSED".
type TouchData struct {
	Status       string `json:"status"`
	ExpiresInSec int    `json:"expires_in_sec"`
}

// CartItem is the authoritative part of one cart line submitted at checkout.
// Prices never travel here; the backend reprices every item.
type CartItem struct {
	ProductID       int64   `json:"product_id"`
	Qty             int     `json:"qty"`
	VariantValueIDs []int64 `json:"variant_value_ids"`
}

// CreateOrderRequest is the order_create_from_cart payload
type CreateOrderRequest struct {
	SessionKey  string     `json:"session_key"`
	ServiceType string     `json:"service_type"`
	Items       []CartItem `json:"items"`
}

// OrderRef is the result of order_create_from_cart
type OrderRef struct {
	OrderID     int64   `json:"order_id"`
	OrderNo     string  `json:"order_no"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// Order is the full authoritative snapshot returned by order_get_full
type Order struct {
	ID          int64   `json:"id"`
	OrderNo     string  `json:"order_no"`
	SessionKey  string  `json:"session_key"`
	ServiceType string  `json:"service_type"`
	PaymentType string  `json:"payment_type"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`

	CreatedAt        string `json:"created_at"`
	CreatedAtLocal   string `json:"created_at_local"`
	PaidAtLocal      string `json:"paid_at_local"`
	PrintedAtLocal   string `json:"printed_at_local"`
	CancelledAtLocal string `json:"cancelled_at_local"`

	Items []OrderItem `json:"items"`
}

// OrderItem is one priced line inside an order snapshot
type OrderItem struct {
	ID        int64              `json:"id"`
	ProductID int64              `json:"product_id"`
	Name      string             `json:"name"`
	Qty       int                `json:"qty"`
	BasePrice float64            `json:"base_price"`
	LineTotal float64            `json:"line_total"`
	ImageURL  string             `json:"image_url,omitempty"`
	Variants  []OrderItemVariant `json:"variants"`
}

// OrderItemVariant is one selected option value inside an order item
type OrderItemVariant struct {
	GroupID    int64   `json:"group_id"`
	GroupName  string  `json:"group_name"`
	ValueID    int64   `json:"value_id"`
	ValueName  string  `json:"value_name"`
	ExtraPrice float64 `json:"extra_price"`
}

// Menu is the kiosk_menu_all snapshot. Maps are keyed by the parent id
// rendered as a string, matching the backend's JSON shape.
type Menu struct {
	Categories     []Category                `json:"categories"`
	SubByCat       map[string][]SubCategory  `json:"sub_by_cat"`
	ProdBySub      map[string][]Product      `json:"prod_by_sub"`
	GroupByProduct map[string][]VariantGroup `json:"group_by_product"`
	ValueByGroup   map[string][]VariantValue `json:"value_by_group"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SubCategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

type Product struct {
	ID            int64   `json:"id"`
	SubCategoryID int64   `json:"sub_category_id"`
	Name          string  `json:"name"`
	BasePrice     float64 `json:"base_price"`
	ImageURL      string  `json:"image_url,omitempty"`
}

// VariantGroup flags use 0/1 integers on the wire
type VariantGroup struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	IsRequired int    `json:"is_required"`
	MaxSelect  int    `json:"max_select"`
}

type VariantValue struct {
	ID         int64   `json:"id"`
	GroupID    int64   `json:"group_id"`
	Name       string  `json:"name"`
	ExtraPrice float64 `json:"extra_price"`
}
