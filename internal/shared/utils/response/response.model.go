package response

// StandardApiResponse is the envelope every kiosk UI endpoint answers with.
// The webview reads Status before anything else; on errors it surfaces
// Message on the footer line.
type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status mirrored into the body
	Message    string      `json:"message"`          // Human-readable outcome
	Data       interface{} `json:"data,omitempty"`   // Payload on success (usually a state snapshot)
	Errors     interface{} `json:"errors,omitempty"` // Binding/validation details
}
