package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"redsys/entity"
)

func TestSelection_UnknownMethodLeavesStateUnchanged(t *testing.T) {
	s, err := NewSelection(nil, entity.TransactionAuthorization).WithPayMethod(entity.PayMethodBizum)
	require.NoError(t, err)

	next, err := s.WithPayMethod("unknown")
	assert.ErrorIs(t, err, ErrUnknownPayMethod)
	assert.Equal(t, entity.PayMethodBizum, next.PayMethod())
	assert.Equal(t, entity.TransactionAuthorization, next.TransactionType())

	var pmErr *PayMethodError
	require.ErrorAs(t, err, &pmErr)
	assert.Equal(t, entity.TransactionAuthorization, pmErr.TransactionType)
}

func TestSelection_AllPairs(t *testing.T) {
	for _, method := range allPayMethods {
		for _, tt := range allTransactionTypes {
			allowed := DefaultMatrix.Supports(method, tt)

			// type first, then method
			s, err := NewSelection(nil, entity.TransactionAuthorization).WithTransactionType(tt)
			require.NoError(t, err)
			after, err := s.WithPayMethod(method)
			if allowed {
				require.NoError(t, err, "%s/%s", method, tt)
				assert.Equal(t, method, after.PayMethod())
				assert.Equal(t, tt, after.TransactionType())
			} else {
				assert.ErrorIs(t, err, ErrIncompatibleCombination, "%s/%s", method, tt)
				assert.Equal(t, s, after)
			}

			// method first (with a type it accepts), then type
			s, err = NewSelection(nil, entity.TransactionAuthorization).WithPayMethod(method)
			require.NoError(t, err, "every method accepts authorization")
			after, err = s.WithTransactionType(tt)
			if allowed {
				require.NoError(t, err, "%s/%s", method, tt)
				assert.Equal(t, method, after.PayMethod())
				assert.Equal(t, tt, after.TransactionType())
			} else {
				assert.ErrorIs(t, err, ErrIncompatibleCombination, "%s/%s", method, tt)
				assert.Equal(t, s, after)
			}
		}
	}
}

func TestSelection_TransactionTypeWithoutMethodIsNotChecked(t *testing.T) {
	m := NewMatrix(map[entity.PayMethod]TypeSet{"X": NewTypeSet(entity.TransactionRefund)})
	s, err := NewSelection(m, entity.TransactionAuthorization).WithTransactionType(entity.TransactionRecurring)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionRecurring, s.TransactionType())
	assert.Equal(t, entity.PayMethod(""), s.PayMethod())
}

func TestSelection_Idempotent(t *testing.T) {
	s, err := NewSelection(nil, entity.TransactionAuthorization).WithPayMethod(entity.PayMethodBizum)
	require.NoError(t, err)

	first, err := s.WithTransactionType(entity.TransactionRefund)
	require.NoError(t, err)
	second, err := first.WithTransactionType(entity.TransactionRefund)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := second.WithPayMethod(entity.PayMethodBizum)
	require.NoError(t, err)
	assert.Equal(t, second, again)
}

func TestSelection_Scenario(t *testing.T) {
	m := NewMatrix(map[entity.PayMethod]TypeSet{
		entity.PayMethodCard: nil,
		"X":                  NewTypeSet(entity.TransactionRefund, entity.TransactionCancellation),
	})

	s, err := NewSelection(m, entity.TransactionAuthorization).WithPayMethod(entity.PayMethodCard)
	require.NoError(t, err)
	s, err = s.WithTransactionType(entity.TransactionAuthorization)
	require.NoError(t, err)
	s, err = s.WithTransactionType(entity.TransactionRefund)
	require.NoError(t, err)
	s, err = s.WithTransactionType(entity.TransactionAuthorization)
	require.NoError(t, err)

	after, err := s.WithPayMethod("X")
	assert.ErrorIs(t, err, ErrIncompatibleCombination)
	assert.Equal(t, entity.PayMethodCard, after.PayMethod())
	assert.Equal(t, entity.TransactionAuthorization, after.TransactionType())
}
