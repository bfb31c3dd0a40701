package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitee.com/golang-module/dongle"
	"redsys/entity"
)

const (
	FieldParameters       = "Ds_MerchantParameters"
	FieldSignature        = "Ds_Signature"
	FieldSignatureVersion = "Ds_SignatureVersion"
)

// Notification is an inbound Redsys message. url.Values and *entity.PaymentRequest satisfy it.
type Notification interface {
	Get(key string) string
}

// DecodeCallback decodes the Ds_MerchantParameters field of n into a key/value mapping.
// It does not check the signature.
func DecodeCallback(n Notification) (map[string]interface{}, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: no notification", ErrMalformedNotification)
	}
	return decodeParameters(n.Get(FieldParameters))
}

func decodeParameters(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty %s", ErrMalformedNotification, FieldParameters)
	}
	encoded := toStandardAlphabet.Replace(raw)
	// senders may strip the trailing padding
	if rem := len(encoded) % 4; rem != 0 {
		encoded += strings.Repeat("=", 4-rem)
	}
	decoded := dongle.Decode.FromString(encoded).ByBase64()
	if decoded.Error != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrMalformedNotification, decoded.Error)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(decoded.ToBytes(), &data); err != nil {
		return nil, fmt.Errorf("%w: parse json: %v", ErrMalformedNotification, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: parameters are not an object", ErrMalformedNotification)
	}
	return data, nil
}

// NewCallbackResponse decodes n and checks its signature with merchantKey.
//
// Malformed input (parameters, signature or version missing or undecodable, unusable key)
// is an error wrapping ErrCallback. A well-formed message with a wrong signature is not:
// the response is returned with SignatureValid false.
func NewCallbackResponse(n Notification, merchantKey string) (*CallbackResponse, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: %w", ErrCallback, ErrMalformedNotification)
	}
	raw := n.Get(FieldParameters)
	data, err := decodeParameters(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCallback, err)
	}
	signature := n.Get(FieldSignature)
	if signature == "" {
		return nil, fmt.Errorf("%w: empty %s", ErrCallback, FieldSignature)
	}
	version := n.Get(FieldSignatureVersion)
	if version == "" {
		version = SignatureVersionSha256
	}
	if version != SignatureVersionSha256 && version != SignatureVersionSha512 {
		return nil, fmt.Errorf("%w: unsupported signature version %q", ErrCallback, version)
	}

	response := &CallbackResponse{
		Data:       data,
		Parameters: parametersFromMap(data),
	}
	if response.Parameters.Order == "" {
		return nil, fmt.Errorf("%w: %w: no order number", ErrCallback, ErrMalformedNotification)
	}

	valid, err := NewEncryptor(merchantKey, version).Verify(raw, response.Parameters.Order, signature)
	if err != nil {
		return nil, fmt.Errorf("%w: verify signature: %v", ErrCallback, err)
	}
	response.SignatureValid = valid
	response.Parameters.SignatureValid = valid
	return response, nil
}

var parameterKeys = map[string]func(p *entity.PaymentParameters, v string){
	"ds_date":                func(p *entity.PaymentParameters, v string) { p.Date = v },
	"ds_hour":                func(p *entity.PaymentParameters, v string) { p.Hour = v },
	"ds_amount":              func(p *entity.PaymentParameters, v string) { p.Amount = v },
	"ds_currency":            func(p *entity.PaymentParameters, v string) { p.Currency = v },
	"ds_order":               func(p *entity.PaymentParameters, v string) { p.Order = v },
	"ds_merchantcode":        func(p *entity.PaymentParameters, v string) { p.MerchantCode = v },
	"ds_terminal":            func(p *entity.PaymentParameters, v string) { p.Terminal = v },
	"ds_response":            func(p *entity.PaymentParameters, v string) { p.Response = v },
	"ds_transactiontype":     func(p *entity.PaymentParameters, v string) { p.TransactionType = v },
	"ds_securepayment":       func(p *entity.PaymentParameters, v string) { p.SecurePayment = v },
	"ds_authorisationcode":   func(p *entity.PaymentParameters, v string) { p.AuthorisationCode = v },
	"ds_consumerlanguage":    func(p *entity.PaymentParameters, v string) { p.ConsumerLanguage = v },
	"ds_card_country":        func(p *entity.PaymentParameters, v string) { p.CardCountry = v },
	"ds_card_brand":          func(p *entity.PaymentParameters, v string) { p.CardBrand = v },
	"ds_expirydate":          func(p *entity.PaymentParameters, v string) { p.ExpiryDate = v },
	"ds_merchant_identifier": func(p *entity.PaymentParameters, v string) { p.MerchantIdentifier = v },
	"ds_merchant_cof_txnid":  func(p *entity.PaymentParameters, v string) { p.MerchantCofTxnid = v },
	"ds_merchantdata":        func(p *entity.PaymentParameters, v string) { p.MerchantData = v },
}

// parametersFromMap fills the known fields. Keys are matched without case because
// the REST reply and the notification do not agree on capitalisation.
func parametersFromMap(data map[string]interface{}) entity.PaymentParameters {
	var p entity.PaymentParameters
	for key, value := range data {
		set, ok := parameterKeys[strings.ToLower(key)]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			set(&p, v)
		case float64:
			set(&p, fmt.Sprintf("%.0f", v))
		default:
			set(&p, fmt.Sprintf("%v", v))
		}
	}
	return p
}
