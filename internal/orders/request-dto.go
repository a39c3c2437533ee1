package orders

// PaymentMethodRequest selects how the customer pays. "qrcode" is the UI
// spelling of the "qr" wire type.
type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required,oneof=counter qrcode qr"`
}
