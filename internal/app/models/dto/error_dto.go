package dto

// ErrorResponse is the wire shape for every failed request:
// a JSON object with a single human-readable message field.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// MessageResponse is the wire shape for simple success acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}
