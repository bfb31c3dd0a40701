// Package entity defines Redsys wire types and the records stored by the gateway service.
package entity

// PayMethod is the value sent in DS_MERCHANT_PAYMETHODS.
type PayMethod string

const (
	PayMethodCard         PayMethod = "C"
	PayMethodCardIupay    PayMethod = "T"
	PayMethodInstallments PayMethod = "I"
	PayMethodTransfer     PayMethod = "R"
	PayMethodDirectDebit  PayMethod = "D"
	PayMethodBizum        PayMethod = "z"
	PayMethodPaypal       PayMethod = "p"
	PayMethodMasterpass   PayMethod = "N"
	PayMethodWallet       PayMethod = "xpay"
)

func (m PayMethod) String() string {
	return string(m)
}
