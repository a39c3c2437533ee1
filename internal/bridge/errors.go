package bridge

import "errors"

var (
	// ErrNotReady is returned before the backend has signalled readiness.
	// Calls fail fast without any network attempt.
	ErrNotReady = errors.New("bridge not ready")

	// ErrUnavailable covers transport failures and an open circuit breaker
	ErrUnavailable = errors.New("bridge unavailable")
)

// BusinessError is a response that resolved normally but carried a non-ok
// status. Message is the backend's human-readable reason and is safe to show
// on the kiosk footer.
type BusinessError struct {
	Method  string
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return e.Method + " rejected"
	}
	return e.Message
}

// IsUnavailable reports whether err is a transport-level failure
// (bridge down, breaker open, or not yet ready)
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrNotReady)
}

// AsBusiness extracts a business rejection from err, if present
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// UserMessage maps any bridge error onto the string shown on the footer
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if be, ok := AsBusiness(err); ok && be.Message != "" {
		return be.Message
	}
	if IsUnavailable(err) {
		return "Backend not ready. Please wait."
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
