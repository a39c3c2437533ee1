package receipt

import "kioskd/internal/bridge"

// Remark printed at the bottom of the ticket, keyed by payment type
const (
	remarkCounter = "Remark: Please Pay to Counter"
	remarkQR      = "Remark: Payment via QR Code Already"
)

// Payload is the flat document handed to the ticket printer. It is a pure
// projection of an authoritative order snapshot; nothing here feeds back into
// order state.
type Payload struct {
	OrderNo       string  `json:"order_no"`
	ServiceType   string  `json:"service_type"`
	PaymentMethod string  `json:"payment_method"`
	CreatedAt     string  `json:"created_at"`
	Lines         []Item  `json:"lines"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	BarcodeText   string  `json:"barcode_text"`
	Remark        string  `json:"remark"`
}

// Item is one printed order line
type Item struct {
	LineNo    int      `json:"line_no"`
	Name      string   `json:"name"`
	Qty       int      `json:"qty"`
	UnitPrice float64  `json:"unit_price"`
	LineTotal float64  `json:"line_total"`
	Options   []Option `json:"options,omitempty"`
}

// Option is one selected variant value, rendered "Group: Value"
type Option struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FromOrder projects an order snapshot into a printable payload. Absent
// optional fields get neutral defaults so the printer never sees nulls.
func FromOrder(order *bridge.Order) *Payload {
	p := &Payload{
		OrderNo:       order.OrderNo,
		ServiceType:   order.ServiceType,
		PaymentMethod: order.PaymentType,
		CreatedAt:     order.CreatedAtLocal,
		Subtotal:      order.TotalAmount,
		Discount:      0,
		Tax:           0,
		Total:         order.TotalAmount,
		BarcodeText:   order.OrderNo,
		Remark:        remarkFor(order.PaymentType),
	}
	if p.CreatedAt == "" {
		p.CreatedAt = order.CreatedAt
	}

	for i, item := range order.Items {
		line := Item{
			LineNo:    i + 1,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.BasePrice,
			LineTotal: item.LineTotal,
		}
		for _, v := range item.Variants {
			line.Options = append(line.Options, Option{
				Name:  v.GroupName + ": " + v.ValueName,
				Price: v.ExtraPrice,
			})
		}
		p.Lines = append(p.Lines, line)
	}
	return p
}

func remarkFor(paymentType string) string {
	if paymentType == "qr" {
		return remarkQR
	}
	return remarkCounter
}
