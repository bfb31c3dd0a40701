package gateway

import "redsys/entity"

// TypeSet is the set of transaction types a payment method accepts.
// A nil TypeSet means the method accepts any transaction type.
type TypeSet map[entity.TransactionType]struct{}

func NewTypeSet(types ...entity.TransactionType) TypeSet {
	set := make(TypeSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// Any reports whether the set is unrestricted.
func (s TypeSet) Any() bool {
	return s == nil
}

func (s TypeSet) Contains(t entity.TransactionType) bool {
	if s == nil {
		return true
	}
	_, ok := s[t]
	return ok
}

// Matrix maps every accepted payment method to the transaction types it supports.
// It is never modified after construction.
type Matrix struct {
	entries map[entity.PayMethod]TypeSet
}

// NewMatrix copies entries into a new Matrix. Use a nil TypeSet for unrestricted methods.
func NewMatrix(entries map[entity.PayMethod]TypeSet) *Matrix {
	m := &Matrix{entries: make(map[entity.PayMethod]TypeSet, len(entries))}
	for method, set := range entries {
		if set == nil {
			m.entries[method] = nil
			continue
		}
		cp := make(TypeSet, len(set))
		for t := range set {
			cp[t] = struct{}{}
		}
		m.entries[method] = cp
	}
	return m
}

// Allowed returns the transaction types supported by method.
// A method missing from the matrix is an error, never an unrestricted default.
func (m *Matrix) Allowed(method entity.PayMethod) (TypeSet, error) {
	set, ok := m.entries[method]
	if !ok {
		return nil, &PayMethodError{Method: method, Err: ErrUnknownPayMethod}
	}
	return set, nil
}

// Supports reports whether method accepts transaction type t.
func (m *Matrix) Supports(method entity.PayMethod, t entity.TransactionType) bool {
	set, err := m.Allowed(method)
	return err == nil && set.Contains(t)
}

// DefaultMatrix lists the payment methods Redsys accepts in DS_MERCHANT_PAYMETHODS.
var DefaultMatrix = NewMatrix(map[entity.PayMethod]TypeSet{
	entity.PayMethodCard:      nil,
	entity.PayMethodCardIupay: nil,
	entity.PayMethodWallet:    nil,

	entity.PayMethodInstallments: NewTypeSet(
		entity.TransactionAuthorization,
		entity.TransactionDeferredAuthorization,
		entity.TransactionDeferredConfirmation,
		entity.TransactionDeferredCancellation,
		entity.TransactionDeferredInitialQuota,
		entity.TransactionDeferredSuccessiveQuota,
		entity.TransactionRefund,
	),
	entity.PayMethodBizum: NewTypeSet(
		entity.TransactionAuthorization,
		entity.TransactionRefund,
	),
	entity.PayMethodPaypal: NewTypeSet(
		entity.TransactionAuthorization,
		entity.TransactionPreauthorization,
		entity.TransactionConfirmation,
		entity.TransactionRefund,
		entity.TransactionCancellation,
	),
	entity.PayMethodMasterpass: NewTypeSet(
		entity.TransactionAuthorization,
		entity.TransactionPreauthorization,
		entity.TransactionConfirmation,
		entity.TransactionRefund,
		entity.TransactionCancellation,
	),

	entity.PayMethodTransfer:    NewTypeSet(entity.TransactionAuthorization),
	entity.PayMethodDirectDebit: NewTypeSet(entity.TransactionAuthorization),
})
