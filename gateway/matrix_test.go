package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"redsys/entity"
)

var allTransactionTypes = []entity.TransactionType{
	entity.TransactionAuthorization,
	entity.TransactionPreauthorization,
	entity.TransactionConfirmation,
	entity.TransactionRefund,
	entity.TransactionRecurring,
	entity.TransactionSuccessive,
	entity.TransactionAuthentication,
	entity.TransactionAuthenticationConfirm,
	entity.TransactionCancellation,
	entity.TransactionDeferredAuthorization,
	entity.TransactionDeferredConfirmation,
	entity.TransactionDeferredCancellation,
	entity.TransactionDeferredInitialQuota,
	entity.TransactionDeferredSuccessiveQuota,
}

var allPayMethods = []entity.PayMethod{
	entity.PayMethodCard,
	entity.PayMethodCardIupay,
	entity.PayMethodInstallments,
	entity.PayMethodTransfer,
	entity.PayMethodDirectDebit,
	entity.PayMethodBizum,
	entity.PayMethodPaypal,
	entity.PayMethodMasterpass,
	entity.PayMethodWallet,
}

func TestMatrix_AllowedUnknownMethod(t *testing.T) {
	_, err := DefaultMatrix.Allowed("unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPayMethod)

	var pmErr *PayMethodError
	require.ErrorAs(t, err, &pmErr)
	assert.Equal(t, entity.PayMethod("unknown"), pmErr.Method)
}

func TestMatrix_EveryMethodHasEntry(t *testing.T) {
	for _, method := range allPayMethods {
		_, err := DefaultMatrix.Allowed(method)
		assert.NoError(t, err, "method %q", method)
	}
}

func TestMatrix_Allowed(t *testing.T) {
	card, err := DefaultMatrix.Allowed(entity.PayMethodCard)
	require.NoError(t, err)
	assert.True(t, card.Any())
	for _, tt := range allTransactionTypes {
		assert.True(t, card.Contains(tt))
	}

	bizum, err := DefaultMatrix.Allowed(entity.PayMethodBizum)
	require.NoError(t, err)
	assert.False(t, bizum.Any())
	assert.True(t, bizum.Contains(entity.TransactionAuthorization))
	assert.True(t, bizum.Contains(entity.TransactionRefund))
	assert.False(t, bizum.Contains(entity.TransactionPreauthorization))

	assert.True(t, DefaultMatrix.Supports(entity.PayMethodTransfer, entity.TransactionAuthorization))
	assert.False(t, DefaultMatrix.Supports(entity.PayMethodTransfer, entity.TransactionRefund))
	assert.False(t, DefaultMatrix.Supports("unknown", entity.TransactionAuthorization))
}

func TestNewMatrix_CopiesEntries(t *testing.T) {
	set := NewTypeSet(entity.TransactionRefund)
	m := NewMatrix(map[entity.PayMethod]TypeSet{"X": set})

	set[entity.TransactionAuthorization] = struct{}{}

	assert.False(t, m.Supports("X", entity.TransactionAuthorization))
	assert.True(t, m.Supports("X", entity.TransactionRefund))
}
