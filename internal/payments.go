package internal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"redsys/config"
	"redsys/entity"
	"redsys/gateway"
	"redsys/services"
)

// Payments builds a fresh Gateway from the merchant configuration for every
// operation, so no gateway state is shared between concurrent requests.
type Payments struct {
	conf      *config.Config
	database  services.Database
	logger    services.LogHandler
	transport gateway.Transport
}

func NewPayments(conf *config.Config) *Payments {
	return &Payments{
		conf:      conf,
		transport: gateway.NewHTTPTransport(),
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	if p.conf.Merchant.TestMode {
		p.logger.Warn("test mode: requests go to the Redsys test environment")
	}
}

func (p *Payments) SetTransport(transport gateway.Transport) {
	p.transport = transport
}

func (p *Payments) newGateway() (*gateway.Gateway, error) {
	merchant := p.conf.Merchant
	if merchant.Secret == "" || merchant.Code == "" {
		return nil, fmt.Errorf("merchant not configured")
	}
	g, err := gateway.New(gateway.Settings{
		Titular:          merchant.Titular,
		Currency:         merchant.Currency,
		Terminal:         merchant.Terminal,
		MerchantName:     merchant.Name,
		MerchantKey:      merchant.Secret,
		MerchantCode:     merchant.Code,
		MerchantCurrency: merchant.Currency,
		Identifier:       merchant.Identifier,
		SignatureMode:    merchant.SignatureMode,
		TestMode:         merchant.TestMode,
		PayMethod:        entity.PayMethod(merchant.PayMethod),
		TransactionType:  entity.TransactionType(merchant.TransactionType),
		RedirectURL:      merchant.RedirectUrl,
		RequestURL:       merchant.RequestUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("merchant configuration: %w", err)
	}
	if p.transport != nil {
		g.SetTransport(p.transport)
	}
	return g, nil
}

// Authorize returns the signed redirect form for an authorization.
func (p *Payments) Authorize(ctx context.Context, params gateway.RequestParams) (gateway.Response, error) {
	g, err := p.newGateway()
	if err != nil {
		return nil, err
	}
	request, err := g.Authorize(p.withDefaults(params))
	if err != nil {
		return nil, err
	}
	return p.send(ctx, request)
}

// Purchase returns the signed redirect form, or for a recurrent purchase charges the
// stored card and records the verified reply.
func (p *Payments) Purchase(ctx context.Context, params gateway.RequestParams) (gateway.Response, error) {
	g, err := p.newGateway()
	if err != nil {
		return nil, err
	}
	request, err := g.Purchase(p.withDefaults(params))
	if err != nil {
		return nil, err
	}
	return p.send(ctx, request)
}

func (p *Payments) send(ctx context.Context, request gateway.Request) (gateway.Response, error) {
	reqID := GetRequestID(ctx)
	response, err := request.Send(ctx)
	if err != nil {
		return nil, err
	}

	switch r := response.(type) {
	case *gateway.RedirectResponse:
		p.logger.Info(fmt.Sprintf("[%s] %s: redirect form for order %s", reqID, request.Kind(), orderOf(request)))
	case *gateway.CallbackResponse:
		p.logger.Info(fmt.Sprintf("[%s] %s: order %s; response %s; signature valid: %v", reqID, request.Kind(), r.Order(), r.Parameters.Response, r.SignatureValid))
		p.saveResult(ctx, r)
	}
	return response, nil
}

// Notify processes a payment notification posted by Redsys as a url-encoded form.
// A notification with a wrong signature is returned together with gateway.ErrBadSignature.
func (p *Payments) Notify(ctx context.Context, data []byte) (*gateway.CallbackResponse, error) {
	params, err := url.ParseQuery(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse query: %v", gateway.ErrMalformedNotification, err)
	}

	g, err := p.newGateway()
	if err != nil {
		return nil, err
	}
	request, err := g.CompletePurchase(gateway.RequestParams{Notification: params})
	if err != nil {
		return nil, err
	}
	response, err := request.Send(ctx)
	if err != nil {
		return nil, err
	}
	result := response.(*gateway.CallbackResponse)

	p.logger.Info(fmt.Sprintf("[%s] notification: type: %s; result: %s; order: %s; amount: %s",
		GetRequestID(ctx), result.Parameters.TransactionType, result.Parameters.Response, result.Order(), result.Parameters.Amount))
	p.saveResult(ctx, result)

	if err = result.Err(); err != nil {
		return result, fmt.Errorf("order %s: %w", result.Order(), err)
	}
	if !result.IsSuccessful() {
		p.logger.Warn(fmt.Sprintf("order %s declined with code %s", result.Order(), result.Parameters.Response))
	} else if result.Parameters.MerchantIdentifier != "" {
		p.logger.Info(fmt.Sprintf("order %s: card token %s stored by redsys", result.Order(), secret(result.Parameters.MerchantIdentifier)))
	}
	return result, nil
}

func (p *Payments) GetPaymentResult(ctx context.Context, order string) (*entity.PaymentParameters, error) {
	if p.database == nil {
		return nil, fmt.Errorf("database not set")
	}
	return p.database.GetPaymentResult(ctx, order)
}

func (p *Payments) withDefaults(params gateway.RequestParams) gateway.RequestParams {
	if params.MerchantURL == "" {
		params.MerchantURL = p.conf.Merchant.NotifyUrl
	}
	return params
}

func (p *Payments) saveResult(ctx context.Context, result *gateway.CallbackResponse) {
	if p.database == nil {
		return
	}
	// Add timeout for database operations if not already set
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}
	parameters := result.Parameters
	parameters.TimeReceived = time.Now()
	if err := p.database.SavePaymentResult(ctx, &parameters); err != nil {
		p.logger.Error("save payment result", err)
	}
}

func orderOf(request gateway.Request) string {
	if r, ok := request.(interface{ Params() gateway.RequestParams }); ok {
		return r.Params().Order
	}
	return "?"
}

// isClientError reports errors caused by the caller's input or configuration choice.
func isClientError(err error) bool {
	return errors.Is(err, gateway.ErrInvalidParameters) ||
		errors.Is(err, gateway.ErrUnknownPayMethod) ||
		errors.Is(err, gateway.ErrIncompatibleCombination) ||
		errors.Is(err, gateway.ErrMalformedNotification) ||
		errors.Is(err, gateway.ErrCallback)
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
