// Package gateway adapts merchant payment operations to the Redsys redirect and REST
// interfaces. It keeps the selected payment method and transaction type consistent
// with a compatibility Matrix, builds signed requests and verifies notifications.
//
// A Gateway is not safe for concurrent use; build one per in-flight payment operation.
// DecodeCallback and NewCallbackResponse are stateless.
package gateway

import "redsys/entity"

const name = "Redsys"

type Gateway struct {
	settings  Settings
	selection Selection
	transport Transport
}

// New creates a gateway using DefaultMatrix.
func New(settings Settings) (*Gateway, error) {
	return NewWithMatrix(settings, DefaultMatrix)
}

// NewWithMatrix creates a gateway whose payment method selection is validated against matrix.
func NewWithMatrix(settings Settings, matrix *Matrix) (*Gateway, error) {
	settings = settings.withDefaults()
	g := &Gateway{
		settings:  settings,
		selection: NewSelection(matrix, settings.TransactionType),
		transport: NewHTTPTransport(),
	}
	if settings.PayMethod != "" {
		if err := g.SetMerchantPaymethod(settings.PayMethod); err != nil {
			return nil, err
		}
		return g, nil
	}
	if err := g.selection.check(settings.PayMethods, settings.TransactionType); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gateway) Name() string {
	return name
}

// SetTransport replaces the HTTP transport used by recurrent purchases.
func (g *Gateway) SetTransport(transport Transport) {
	g.transport = transport
}

// Settings returns a copy of the current configuration including the selection.
func (g *Gateway) Settings() Settings {
	s := g.settings
	s.PayMethod = g.selection.PayMethod()
	s.TransactionType = g.selection.TransactionType()
	return s
}

// PayMethod returns the selected payment method, or the default PayMethods when none was selected.
func (g *Gateway) PayMethod() entity.PayMethod {
	if m := g.selection.PayMethod(); m != "" {
		return m
	}
	return g.settings.PayMethods
}

func (g *Gateway) TransactionType() entity.TransactionType {
	return g.selection.TransactionType()
}

// SetMerchantPaymethod selects method. It fails with ErrUnknownPayMethod when the
// method is not in the matrix and ErrIncompatibleCombination when it does not
// support the current transaction type; the gateway is unchanged on error.
func (g *Gateway) SetMerchantPaymethod(method entity.PayMethod) error {
	selection, err := g.selection.WithPayMethod(method)
	if err != nil {
		return err
	}
	g.selection = selection
	return nil
}

// SetTransactionType fails with ErrIncompatibleCombination when a selected payment
// method does not support t; the gateway is unchanged on error.
func (g *Gateway) SetTransactionType(t entity.TransactionType) error {
	selection, err := g.selection.WithTransactionType(t)
	if err != nil {
		return err
	}
	g.selection = selection
	return nil
}

func (g *Gateway) SetMerchantName(merchantName string) {
	g.settings.MerchantName = merchantName
}

func (g *Gateway) SetMerchantKey(merchantKey string) {
	g.settings.MerchantKey = merchantKey
}

func (g *Gateway) SetMerchantCode(merchantCode string) {
	g.settings.MerchantCode = merchantCode
}

func (g *Gateway) SetTerminal(terminal string) {
	g.settings.Terminal = terminal
}

func (g *Gateway) SetSignatureMode(signatureMode string) {
	g.settings.SignatureMode = signatureMode
}

func (g *Gateway) SetTitular(titular string) {
	g.settings.Titular = titular
}

func (g *Gateway) SetCurrency(currency string) {
	g.settings.Currency = currency
}

// SetCurrencyMerchant sets the currency sent to Redsys; it takes precedence over Currency.
func (g *Gateway) SetCurrencyMerchant(currency string) {
	g.settings.MerchantCurrency = currency
}

// SetIdentifier flags requests to ask for a card token ("REQUIRED") or to pay with one.
func (g *Gateway) SetIdentifier(identifier string) {
	g.settings.Identifier = identifier
}

func (g *Gateway) SetTestMode(testMode bool) {
	g.settings.TestMode = testMode
}

// Parameter returns a named parameter (see DefaultParameters for the names).
func (g *Gateway) Parameter(name string) (interface{}, bool) {
	value, ok := g.Parameters()[name]
	return value, ok
}

// Parameters returns a snapshot of the named parameters.
func (g *Gateway) Parameters() map[string]interface{} {
	s := g.Settings()
	params := DefaultParameters()
	params["titular"] = s.Titular
	params["currency"] = s.Currency
	params["terminal"] = s.Terminal
	params["merchantName"] = s.MerchantName
	params["transactionType"] = s.TransactionType
	params["signatureMode"] = s.SignatureMode
	params["testMode"] = s.TestMode
	params["payMethods"] = s.PayMethods
	params["merchantKey"] = s.MerchantKey
	params["merchantCode"] = s.MerchantCode
	params["merchantCurrency"] = s.MerchantCurrency
	params["identifier"] = s.Identifier
	if s.PayMethod != "" {
		params["merchantPaymethod"] = s.PayMethod
	}
	return params
}

func (g *Gateway) Authorize(params RequestParams) (Request, error) {
	return g.buildRequest(IntentAuthorize, params)
}

func (g *Gateway) CompleteAuthorize(params RequestParams) (Request, error) {
	return g.buildRequest(IntentCompleteAuthorize, params)
}

// Purchase returns a RecurrentPurchaseRequest when params.Recurrent is set, a PurchaseRequest otherwise.
func (g *Gateway) Purchase(params RequestParams) (Request, error) {
	return g.buildRequest(IntentPurchase, params)
}

func (g *Gateway) CompletePurchase(params RequestParams) (Request, error) {
	return g.buildRequest(IntentCompletePurchase, params)
}

// CheckCallback verifies n and reports whether it is a successful, correctly signed notification.
// A wrong signature yields false, not an error.
func (g *Gateway) CheckCallback(n Notification) (bool, error) {
	response, err := g.CallbackResponse(n)
	if err != nil {
		return false, err
	}
	return response.IsSuccessful(), nil
}

// CallbackResponse verifies n and returns the response whatever the verification outcome.
func (g *Gateway) CallbackResponse(n Notification) (*CallbackResponse, error) {
	return NewCallbackResponse(n, g.settings.MerchantKey)
}

// DecodeCallback decodes the notification parameters without checking the signature.
func (g *Gateway) DecodeCallback(n Notification) (map[string]interface{}, error) {
	return DecodeCallback(n)
}
