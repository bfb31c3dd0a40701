package gateway

import (
	"net/url"
	"strconv"

	"redsys/entity"
)

// Response is what a Request produces when sent.
type Response interface {
	IsSuccessful() bool
	IsRedirect() bool
}

// RedirectResponse carries the signed form the customer's browser must post to Redsys.
type RedirectResponse struct {
	URL  string                `json:"url"`
	Form entity.PaymentRequest `json:"form"`
}

func (r *RedirectResponse) IsSuccessful() bool {
	return false
}

func (r *RedirectResponse) IsRedirect() bool {
	return true
}

// FormValues returns the form fields to post to URL.
func (r *RedirectResponse) FormValues() url.Values {
	return url.Values{
		FieldSignatureVersion: {r.Form.SignatureVersion},
		FieldParameters:       {r.Form.Parameters},
		FieldSignature:        {r.Form.Signature},
	}
}

// CallbackResponse is a decoded and verified Redsys notification or REST reply.
type CallbackResponse struct {
	Data           map[string]interface{}   `json:"data"`
	Parameters     entity.PaymentParameters `json:"parameters"`
	SignatureValid bool                     `json:"signature_valid"`
}

// IsSuccessful reports a valid signature and an approving Ds_Response code:
// 0000-0099 for authorizations, 0900 for refunds and confirmations, 0400 for cancellations.
func (r *CallbackResponse) IsSuccessful() bool {
	if !r.SignatureValid {
		return false
	}
	code, err := strconv.Atoi(r.Parameters.Response)
	if err != nil {
		return false
	}
	t := entity.TransactionType(r.Parameters.TransactionType)
	switch {
	case t.IsRefundLike():
		return code == 900
	case t.IsCancellation():
		return code == 400
	}
	return code >= 0 && code <= 99
}

func (r *CallbackResponse) IsRedirect() bool {
	return false
}

// Err returns ErrBadSignature when the signature did not match.
func (r *CallbackResponse) Err() error {
	if !r.SignatureValid {
		return ErrBadSignature
	}
	return nil
}

func (r *CallbackResponse) Order() string {
	return r.Parameters.Order
}
