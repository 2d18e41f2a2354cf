// Package dto holds the JSON shapes of the HTTP API and the mapping from
// use case outputs onto them.
package dto

// ErrorResponse is the body of every non-2xx answer. Code is the stable
// machine-readable part; Error may change wording.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
