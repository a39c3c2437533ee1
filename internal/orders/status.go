package orders

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusPaid      Status = "PAID"
	StatusPrinted   Status = "PRINTED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusPrinted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal checks if the order can no longer change state
func (s Status) IsTerminal() bool {
	return s == StatusPrinted || s == StatusCancelled
}

// CanBeCancelled checks if an order with this status can still be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusCreated || s == StatusPaid
}

// IsPayable checks if the order is waiting for payment
func (s Status) IsPayable() bool {
	return s == StatusCreated
}
