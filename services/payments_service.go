package services

import (
	"context"

	"redsys/entity"
	"redsys/gateway"
)

// Payments initiates Redsys operations and processes their notifications.
type Payments interface {
	Authorize(ctx context.Context, params gateway.RequestParams) (gateway.Response, error)
	Purchase(ctx context.Context, params gateway.RequestParams) (gateway.Response, error)
	Notify(ctx context.Context, data []byte) (*gateway.CallbackResponse, error)
	GetPaymentResult(ctx context.Context, order string) (*entity.PaymentParameters, error)
}
