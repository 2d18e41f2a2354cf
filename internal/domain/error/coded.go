// Package error defines the errors use cases report to the transport layer.
// Each area has its own code type so errors.As can tell them apart.
package error

// Coded pairs a stable client-facing code with a message safe to show and an
// optional cause kept for logs.
type Coded[C ~string] struct {
	Code    C
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Coded[C]) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the cause.
func (e *Coded[C]) Unwrap() error {
	return e.Err
}

func newCoded[C ~string](code C, message string, cause error) *Coded[C] {
	return &Coded[C]{Code: code, Message: message, Err: cause}
}
