package receipt

import "context"

// Printer renders a receipt payload on the physical ticket printer
type Printer interface {
	Print(ctx context.Context, payload *Payload) error
}

// bridgeCaller is the slice of the RPC bridge the printer needs
type bridgeCaller interface {
	PrintReceipt(ctx context.Context, payload any) error
}

type bridgePrinter struct {
	bridge bridgeCaller
}

// NewPrinter creates a Printer backed by the RPC bridge
func NewPrinter(b bridgeCaller) Printer {
	return &bridgePrinter{bridge: b}
}

func (p *bridgePrinter) Print(ctx context.Context, payload *Payload) error {
	return p.bridge.PrintReceipt(ctx, payload)
}
