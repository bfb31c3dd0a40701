package services

import (
	"context"

	"redsys/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	SavePaymentResult(ctx context.Context, paymentParameters *entity.PaymentParameters) error
	GetPaymentResult(ctx context.Context, order string) (*entity.PaymentParameters, error)
}

type Data interface {
	DataType() string
}
