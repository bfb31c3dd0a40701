package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gitee.com/golang-module/dongle"
	"github.com/shopspring/decimal"
	"redsys/entity"
)

// Intent is the operation a caller asks the gateway for.
type Intent int

const (
	IntentAuthorize Intent = iota + 1
	IntentCompleteAuthorize
	IntentPurchase
	IntentCompletePurchase
)

// RequestKind names the request variant chosen for an intent.
type RequestKind string

const (
	KindAuthorize         RequestKind = "authorize"
	KindCompleteAuthorize RequestKind = "complete_authorize"
	KindPurchase          RequestKind = "purchase"
	KindRecurrentPurchase RequestKind = "recurrent_purchase"
	KindCompletePurchase  RequestKind = "complete_purchase"
)

// RequestParams holds the per-operation values of a request.
type RequestParams struct {
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	Order            string          `json:"order"`
	Description      string          `json:"description,omitempty"`
	MerchantData     string          `json:"merchant_data,omitempty"`
	MerchantURL      string          `json:"merchant_url,omitempty"`
	ReturnURL        string          `json:"return_url,omitempty"`
	CancelURL        string          `json:"cancel_url,omitempty"`
	ConsumerLanguage string          `json:"consumer_language,omitempty"`
	Identifier       string          `json:"identifier,omitempty"`
	CofTid           string          `json:"cof_tid,omitempty"`
	Recurrent        bool            `json:"recurrent,omitempty"`
	// Notification is verified by the complete requests.
	Notification Notification `json:"-"`
}

// Request is a prepared operation. Send performs it; only the recurrent purchase
// uses the network.
type Request interface {
	Kind() RequestKind
	Send(ctx context.Context) (Response, error)
}

func (g *Gateway) buildRequest(intent Intent, params RequestParams) (Request, error) {
	base := baseRequest{
		settings:  g.Settings(),
		payMethod: g.PayMethod(),
		transport: g.transport,
		params:    params,
	}
	switch intent {
	case IntentAuthorize, IntentPurchase:
		// covers the default PayMethods, which the selection does not track
		if err := g.selection.check(base.payMethod, g.TransactionType()); err != nil {
			return nil, err
		}
	}
	switch intent {
	case IntentAuthorize:
		return &AuthorizeRequest{base}, nil
	case IntentCompleteAuthorize:
		return &CompleteAuthorizeRequest{completeRequest{base}}, nil
	case IntentPurchase:
		if params.Recurrent {
			return &RecurrentPurchaseRequest{base}, nil
		}
		return &PurchaseRequest{base}, nil
	case IntentCompletePurchase:
		return &CompletePurchaseRequest{completeRequest{base}}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedIntent, intent)
}

// baseRequest is a snapshot of the gateway taken when the request was built.
type baseRequest struct {
	settings  Settings
	payMethod entity.PayMethod
	transport Transport
	params    RequestParams
}

func (r *baseRequest) Params() RequestParams {
	return r.params
}

// merchantParameters fills the fields common to every outbound request.
func (r *baseRequest) merchantParameters() (*entity.MerchantParameters, error) {
	if err := validateOrder(r.params.Order); err != nil {
		return nil, err
	}
	code := r.params.Currency
	if code == "" {
		code = r.settings.MerchantCurrency
	}
	if code == "" {
		code = r.settings.Currency
	}
	c, err := lookupCurrency(code)
	if err != nil {
		return nil, err
	}
	amount, err := c.minorUnits(r.params.Amount)
	if err != nil {
		return nil, err
	}
	identifier := r.params.Identifier
	if identifier == "" {
		identifier = r.settings.Identifier
	}
	return &entity.MerchantParameters{
		Amount:          amount,
		Order:           r.params.Order,
		Identifier:      identifier,
		MerchantCode:    r.settings.MerchantCode,
		Currency:        c.numeric,
		TransactionType: r.settings.TransactionType.String(),
		Terminal:        r.settings.Terminal,
		MerchantData:    r.params.MerchantData,
	}, nil
}

// sign encodes parameters as Base64 JSON and signs them with the merchant key.
func (r *baseRequest) sign(parameters *entity.MerchantParameters) (*entity.PaymentRequest, error) {
	if r.settings.MerchantKey == "" || r.settings.MerchantCode == "" {
		return nil, fmt.Errorf("%w: merchant not configured", ErrInvalidParameters)
	}
	version, err := signatureVersion(r.settings.SignatureMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	parametersJson, err := json.Marshal(parameters)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %v", err)
	}
	parametersBase64 := dongle.Encode.FromBytes(parametersJson).ByBase64().ToString()

	signature, err := NewEncryptor(r.settings.MerchantKey, version).CreateSignature(parametersBase64, parameters.Order)
	if err != nil {
		return nil, fmt.Errorf("create signature: %v", err)
	}
	return &entity.PaymentRequest{
		Parameters:       parametersBase64,
		Signature:        signature,
		SignatureVersion: version,
	}, nil
}

// validateOrder checks the Redsys order format: 4 to 12 characters, the first four numeric.
func validateOrder(order string) error {
	if len(order) < 4 || len(order) > 12 {
		return fmt.Errorf("%w: order %q must have 4 to 12 characters", ErrInvalidParameters, order)
	}
	if strings.Trim(order[:4], "0123456789") != "" {
		return fmt.Errorf("%w: order %q must start with 4 digits", ErrInvalidParameters, order)
	}
	for _, ch := range order[4:] {
		if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z') {
			return fmt.Errorf("%w: order %q must be alphanumeric", ErrInvalidParameters, order)
		}
	}
	return nil
}

// PurchaseRequest sends the customer to the Redsys payment page.
type PurchaseRequest struct {
	baseRequest
}

func (r *PurchaseRequest) Kind() RequestKind {
	return KindPurchase
}

// Data returns the unsigned merchant parameters of the redirect form.
func (r *PurchaseRequest) Data() (*entity.MerchantParameters, error) {
	parameters, err := r.merchantParameters()
	if err != nil {
		return nil, err
	}
	language := r.params.ConsumerLanguage
	if language == "" {
		language = DefaultConsumerLanguage
	}
	parameters.PayMethods = r.payMethod.String()
	parameters.MerchantName = r.settings.MerchantName
	parameters.Titular = r.settings.Titular
	parameters.MerchantURL = r.params.MerchantURL
	parameters.UrlOK = r.params.ReturnURL
	parameters.UrlKO = r.params.CancelURL
	parameters.ConsumerLanguage = language
	parameters.ProductDescription = r.params.Description
	return parameters, nil
}

func (r *PurchaseRequest) Send(_ context.Context) (Response, error) {
	parameters, err := r.Data()
	if err != nil {
		return nil, err
	}
	form, err := r.sign(parameters)
	if err != nil {
		return nil, err
	}
	return &RedirectResponse{URL: r.settings.redirectURL(), Form: *form}, nil
}

// AuthorizeRequest builds the same redirect form as PurchaseRequest. The request does
// not pick the transaction type: whether the amount is charged or only reserved follows
// the gateway's selected type (TransactionPreauthorization to reserve), which was already
// checked against the payment method.
type AuthorizeRequest struct {
	baseRequest
}

func (r *AuthorizeRequest) Kind() RequestKind {
	return KindAuthorize
}

func (r *AuthorizeRequest) Send(ctx context.Context) (Response, error) {
	purchase := PurchaseRequest{r.baseRequest}
	return purchase.Send(ctx)
}

// RecurrentPurchaseRequest charges a stored card without the customer (merchant
// initiated transaction) through the REST endpoint.
type RecurrentPurchaseRequest struct {
	baseRequest
}

func (r *RecurrentPurchaseRequest) Kind() RequestKind {
	return KindRecurrentPurchase
}

// Data returns the unsigned MIT parameters.
func (r *RecurrentPurchaseRequest) Data() (*entity.MerchantParameters, error) {
	parameters, err := r.merchantParameters()
	if err != nil {
		return nil, err
	}
	if parameters.Identifier == "" || parameters.Identifier == "REQUIRED" {
		return nil, fmt.Errorf("%w: recurrent purchase needs a stored identifier", ErrInvalidParameters)
	}
	parameters.DirectPayment = "true"
	parameters.Exception = "MIT"
	parameters.CofIni = "N"
	parameters.CofType = "R"
	parameters.CofTid = r.params.CofTid
	return parameters, nil
}

func (r *RecurrentPurchaseRequest) Send(ctx context.Context) (Response, error) {
	parameters, err := r.Data()
	if err != nil {
		return nil, err
	}
	request, err := r.sign(parameters)
	if err != nil {
		return nil, err
	}
	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode request: %v", err)
	}
	if r.transport == nil {
		return nil, fmt.Errorf("%w: no transport", ErrTransport)
	}
	body, err := r.transport.Post(ctx, r.settings.requestURL(), requestData)
	if err != nil {
		return nil, err
	}

	var reply entity.PaymentRequest
	if err = json.Unmarshal(body, &reply); err != nil || reply.Parameters == "" {
		var errorCode entity.ErrorCodeResponse
		if e := json.Unmarshal(body, &errorCode); e == nil && errorCode.Code != "" {
			return nil, fmt.Errorf("%w: response error code: %s", ErrTransport, errorCode.Code)
		}
		return nil, fmt.Errorf("%w: unrecognized response", ErrTransport)
	}
	return verify(&reply, r.settings.MerchantKey)
}

type completeRequest struct {
	baseRequest
}

func (r *completeRequest) Send(_ context.Context) (Response, error) {
	if r.params.Notification == nil {
		return nil, fmt.Errorf("%w: no notification to complete", ErrInvalidParameters)
	}
	return verify(r.params.Notification, r.settings.MerchantKey)
}

func verify(n Notification, merchantKey string) (Response, error) {
	response, err := NewCallbackResponse(n, merchantKey)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// CompleteAuthorizeRequest verifies the notification that closes an authorization.
type CompleteAuthorizeRequest struct {
	completeRequest
}

func (r *CompleteAuthorizeRequest) Kind() RequestKind {
	return KindCompleteAuthorize
}

// CompletePurchaseRequest verifies the notification that closes a purchase.
type CompletePurchaseRequest struct {
	completeRequest
}

func (r *CompletePurchaseRequest) Kind() RequestKind {
	return KindCompletePurchase
}
