package entity

// PaymentRequest holds the three signed fields exchanged with Redsys: the redirect form,
// the REST request and reply, and the asynchronous notification share this shape.
type PaymentRequest struct {
	Parameters       string `json:"Ds_MerchantParameters"`
	Signature        string `json:"Ds_Signature"`
	SignatureVersion string `json:"Ds_SignatureVersion"`
}

// Get returns a field by its wire name, so a PaymentRequest can be verified like any inbound form.
func (r *PaymentRequest) Get(key string) string {
	switch key {
	case "Ds_MerchantParameters":
		return r.Parameters
	case "Ds_Signature":
		return r.Signature
	case "Ds_SignatureVersion":
		return r.SignatureVersion
	}
	return ""
}

// ErrorCodeResponse is returned by the REST endpoint instead of a signed reply.
type ErrorCodeResponse struct {
	Code string `json:"errorCode"`
}
