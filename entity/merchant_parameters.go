package entity

// MerchantParameters represents Redsys API request parameters for payment operations.
// These parameters are JSON encoded, Base64 encoded and signed before sending to Redsys.
type MerchantParameters struct {
	// Amount in cents (e.g., "1000" = 10.00 EUR)
	Amount string `json:"DS_MERCHANT_AMOUNT"`
	// Order number - must be unique for the merchant (4 digits + up to 8 alphanumeric)
	Order string `json:"DS_MERCHANT_ORDER"`
	// Identifier for stored payment method (card token); "REQUIRED" asks Redsys to create one
	Identifier string `json:"DS_MERCHANT_IDENTIFIER,omitempty"`
	// Merchant code assigned by Redsys
	MerchantCode string `json:"DS_MERCHANT_MERCHANTCODE"`
	// Numeric ISO 4217 currency code (978 = EUR)
	Currency        string `json:"DS_MERCHANT_CURRENCY"`
	TransactionType string `json:"DS_MERCHANT_TRANSACTIONTYPE"`
	// Terminal number assigned by Redsys
	Terminal     string `json:"DS_MERCHANT_TERMINAL"`
	PayMethods   string `json:"DS_MERCHANT_PAYMETHODS,omitempty"`
	MerchantName string `json:"DS_MERCHANT_MERCHANTNAME,omitempty"`
	// MerchantURL receives the asynchronous notification
	MerchantURL        string `json:"DS_MERCHANT_MERCHANTURL,omitempty"`
	UrlOK              string `json:"DS_MERCHANT_URLOK,omitempty"`
	UrlKO              string `json:"DS_MERCHANT_URLKO,omitempty"`
	ConsumerLanguage   string `json:"DS_MERCHANT_CONSUMERLANGUAGE,omitempty"`
	Titular            string `json:"DS_MERCHANT_TITULAR,omitempty"`
	ProductDescription string `json:"DS_MERCHANT_PRODUCTDESCRIPTION,omitempty"`
	MerchantData       string `json:"DS_MERCHANT_MERCHANTDATA,omitempty"`
	// DirectPayment: "true" = use stored token without redirect
	DirectPayment string `json:"DS_MERCHANT_DIRECTPAYMENT,omitempty"`
	// Exception: "MIT" = Merchant Initiated Transaction exemption (PSD2)
	Exception string `json:"DS_MERCHANT_EXCEP_SCA,omitempty"`
	// CofIni: "S" = initial credential storage, "N" = subsequent use of stored credentials
	CofIni string `json:"DS_MERCHANT_COF_INI,omitempty"`
	// CofType: "R" = Recurring, "I" = Installments, "C" = Others
	CofType string `json:"DS_MERCHANT_COF_TYPE,omitempty"`
	// CofTid: Network transaction ID from initial authorization (links MIT to original CIT)
	CofTid string `json:"DS_MERCHANT_COF_TXNID,omitempty"`
}
