package gateway

import "redsys/entity"

// Selection is a payment method and transaction type pair kept consistent with a Matrix.
// Both setters return a new value and leave the receiver untouched on error.
//
// The check is asymmetric: a transaction type may be chosen before any payment
// method, in which case validation is deferred to WithPayMethod.
type Selection struct {
	matrix          *Matrix
	method          entity.PayMethod
	transactionType entity.TransactionType
}

// NewSelection starts a selection with transaction type t and no payment method.
// A nil matrix means DefaultMatrix.
func NewSelection(matrix *Matrix, t entity.TransactionType) Selection {
	return Selection{matrix: matrix, transactionType: t}
}

// PayMethod returns the selected method, or "" when none was selected.
func (s Selection) PayMethod() entity.PayMethod {
	return s.method
}

func (s Selection) TransactionType() entity.TransactionType {
	return s.transactionType
}

func (s Selection) WithPayMethod(method entity.PayMethod) (Selection, error) {
	if err := s.check(method, s.transactionType); err != nil {
		return s, err
	}
	s.method = method
	return s, nil
}

func (s Selection) WithTransactionType(t entity.TransactionType) (Selection, error) {
	if s.method != "" {
		if err := s.check(s.method, t); err != nil {
			return s, err
		}
	}
	s.transactionType = t
	return s, nil
}

func (s Selection) check(method entity.PayMethod, t entity.TransactionType) error {
	allowed, err := s.table().Allowed(method)
	if err != nil {
		return &PayMethodError{Method: method, TransactionType: t, Err: ErrUnknownPayMethod}
	}
	if !allowed.Contains(t) {
		return &PayMethodError{Method: method, TransactionType: t, Err: ErrIncompatibleCombination}
	}
	return nil
}

func (s Selection) table() *Matrix {
	if s.matrix == nil {
		return DefaultMatrix
	}
	return s.matrix
}
