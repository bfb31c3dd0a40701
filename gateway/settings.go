package gateway

import "redsys/entity"

const (
	DefaultConsumerLanguage = "001"
	DefaultCurrency         = "EUR"
	DefaultTerminal         = "001"

	liveRedirectURL = "https://sis.redsys.es/sis/realizarPago"
	testRedirectURL = "https://sis-t.redsys.es:25443/sis/realizarPago"
	liveRequestURL  = "https://sis.redsys.es/sis/rest/trataPeticionREST"
	testRequestURL  = "https://sis-t.redsys.es:25443/sis/rest/trataPeticionREST"
)

// Settings is the long-lived merchant configuration of a Gateway.
// Per-payment values (URLs, consumer language, amount, order) belong to RequestParams.
type Settings struct {
	Titular          string
	Currency         string
	Terminal         string
	MerchantName     string
	MerchantKey      string
	MerchantCode     string
	MerchantCurrency string
	Identifier       string
	SignatureMode    string
	TestMode         bool
	// PayMethods is sent when no payment method was selected.
	PayMethods entity.PayMethod
	// PayMethod, when set, is selected at construction and validated against TransactionType.
	PayMethod       entity.PayMethod
	TransactionType entity.TransactionType
	// RedirectURL and RequestURL override the Redsys endpoints chosen by TestMode.
	RedirectURL string
	RequestURL  string
}

// DefaultSettings returns the defaults applied to every empty field.
func DefaultSettings() Settings {
	return Settings{
		Currency:        DefaultCurrency,
		Terminal:        DefaultTerminal,
		SignatureMode:   SignatureModeSimple,
		PayMethods:      entity.PayMethodCard,
		TransactionType: entity.TransactionAuthorization,
	}
}

// DefaultParameters lists the named parameters and their defaults.
func DefaultParameters() map[string]interface{} {
	d := DefaultSettings()
	return map[string]interface{}{
		"titular":          d.Titular,
		"consumerLanguage": DefaultConsumerLanguage,
		"currency":         d.Currency,
		"terminal":         d.Terminal,
		"merchantURL":      "",
		"merchantName":     d.MerchantName,
		"transactionType":  d.TransactionType,
		"signatureMode":    d.SignatureMode,
		"testMode":         d.TestMode,
		"payMethods":       d.PayMethods,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Currency == "" {
		s.Currency = d.Currency
	}
	if s.Terminal == "" {
		s.Terminal = d.Terminal
	}
	if s.SignatureMode == "" {
		s.SignatureMode = d.SignatureMode
	}
	if s.PayMethods == "" {
		s.PayMethods = d.PayMethods
	}
	if s.TransactionType == "" {
		s.TransactionType = d.TransactionType
	}
	return s
}

func (s Settings) redirectURL() string {
	if s.RedirectURL != "" {
		return s.RedirectURL
	}
	if s.TestMode {
		return testRedirectURL
	}
	return liveRedirectURL
}

func (s Settings) requestURL() string {
	if s.RequestURL != "" {
		return s.RequestURL
	}
	if s.TestMode {
		return testRequestURL
	}
	return liveRequestURL
}
