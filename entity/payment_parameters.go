package entity

import "time"

// PaymentParameters is the decoded Ds_MerchantParameters bundle of a notification or REST reply.
type PaymentParameters struct {
	Date               string    `json:"Ds_Date" bson:"date"`
	Hour               string    `json:"Ds_Hour" bson:"hour"`
	Amount             string    `json:"Ds_Amount" bson:"amount"`
	Currency           string    `json:"Ds_Currency" bson:"currency"`
	Order              string    `json:"Ds_Order" bson:"order"`
	MerchantCode       string    `json:"Ds_MerchantCode" bson:"merchant_code"`
	Terminal           string    `json:"Ds_Terminal" bson:"terminal"`
	Response           string    `json:"Ds_Response" bson:"response"`
	TransactionType    string    `json:"Ds_TransactionType" bson:"transaction_type"`
	SecurePayment      string    `json:"Ds_SecurePayment" bson:"secure_payment"`
	AuthorisationCode  string    `json:"Ds_AuthorisationCode" bson:"authorisation_code"`
	ConsumerLanguage   string    `json:"Ds_ConsumerLanguage" bson:"consumer_language"`
	CardCountry        string    `json:"Ds_Card_Country" bson:"card_country"`
	CardBrand          string    `json:"Ds_Card_Brand" bson:"card_brand"`
	ExpiryDate         string    `json:"Ds_ExpiryDate" bson:"expiry_date"`
	MerchantIdentifier string    `json:"Ds_Merchant_Identifier" bson:"merchant_identifier"`
	MerchantCofTxnid   string    `json:"Ds_Merchant_Cof_Txnid" bson:"merchant_cof_txnid"`
	MerchantData       string    `json:"Ds_MerchantData" bson:"merchant_data"`
	SignatureValid     bool      `json:"-" bson:"signature_valid"`
	TimeReceived       time.Time `json:"-" bson:"time_received"`
}
