package entity

// TransactionType is the value sent in DS_MERCHANT_TRANSACTIONTYPE.
type TransactionType string

const (
	TransactionAuthorization           TransactionType = "0"
	TransactionPreauthorization        TransactionType = "1"
	TransactionConfirmation            TransactionType = "2"
	TransactionRefund                  TransactionType = "3"
	TransactionRecurring               TransactionType = "5"
	TransactionSuccessive              TransactionType = "6"
	TransactionAuthentication          TransactionType = "7"
	TransactionAuthenticationConfirm   TransactionType = "8"
	TransactionCancellation            TransactionType = "9"
	TransactionDeferredAuthorization   TransactionType = "O"
	TransactionDeferredConfirmation    TransactionType = "P"
	TransactionDeferredCancellation    TransactionType = "Q"
	TransactionDeferredInitialQuota    TransactionType = "R"
	TransactionDeferredSuccessiveQuota TransactionType = "S"
)

func (t TransactionType) String() string {
	return string(t)
}

// IsRefundLike reports whether a successful answer for this type carries code 0900.
func (t TransactionType) IsRefundLike() bool {
	return t == TransactionRefund || t == TransactionConfirmation || t == TransactionAuthenticationConfirm || t == TransactionDeferredConfirmation
}

// IsCancellation reports whether a successful answer for this type carries code 0400.
func (t TransactionType) IsCancellation() bool {
	return t == TransactionCancellation || t == TransactionDeferredCancellation
}
