package service

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrUnknownStatus = errors.New("unknown order status")
)

// ValidationError carries a human-readable message for the uniform
// {success:false, message} envelope.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
