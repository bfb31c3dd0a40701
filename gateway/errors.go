package gateway

import (
	"errors"
	"fmt"

	"redsys/entity"
)

var (
	ErrUnknownPayMethod        = errors.New("unknown payment method")
	ErrIncompatibleCombination = errors.New("payment method does not support transaction type")
	ErrUnsupportedIntent       = errors.New("unsupported request intent")
	ErrMalformedNotification   = errors.New("malformed notification")
	ErrBadSignature            = errors.New("bad signature")
	ErrCallback                = errors.New("callback error")
	ErrTransport               = errors.New("transport error")
	ErrInvalidParameters       = errors.New("invalid request parameters")
)

// PayMethodError is returned when a payment method or its pairing with a
// transaction type is rejected. It unwraps to ErrUnknownPayMethod or
// ErrIncompatibleCombination.
type PayMethodError struct {
	Method          entity.PayMethod
	TransactionType entity.TransactionType
	Err             error
}

func (e *PayMethodError) Error() string {
	if e.TransactionType == "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Method)
	}
	return fmt.Sprintf("%v: method %q, transaction type %q", e.Err, e.Method, e.TransactionType)
}

func (e *PayMethodError) Unwrap() error {
	return e.Err
}
