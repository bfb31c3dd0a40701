package internal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"redsys/config"
	"redsys/entity"
	"redsys/gateway"
	"redsys/services"
)

const testSecret = "sq7HjrUOBfKmC576ILgskD5srU870gJ7"

type memoryDatabase struct {
	mutex    sync.Mutex
	messages []services.Data
	results  []entity.PaymentParameters
}

func (m *memoryDatabase) WriteLogMessage(data services.Data) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.messages = append(m.messages, data)
	return nil
}

func (m *memoryDatabase) SavePaymentResult(_ context.Context, paymentParameters *entity.PaymentParameters) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.results = append(m.results, *paymentParameters)
	return nil
}

func (m *memoryDatabase) GetPaymentResult(_ context.Context, order string) (*entity.PaymentParameters, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].Order == order && m.results[i].SignatureValid {
			result := m.results[i]
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

func newTestLogger(database services.Database) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return newLoggerWithCore("test", core, database), logs
}

func newTestConfig() *config.Config {
	conf := &config.Config{}
	conf.Merchant.Secret = testSecret
	conf.Merchant.Code = "999008881"
	conf.Merchant.Terminal = "001"
	conf.Merchant.Currency = "EUR"
	conf.Merchant.SignatureMode = "simple"
	conf.Merchant.TransactionType = "0"
	conf.Merchant.TestMode = true
	conf.Merchant.NotifyUrl = "https://shop.example/notify"
	conf.Notify.Rate = 100
	conf.Notify.Burst = 100
	return conf
}

// notificationValues returns the signed fields of a notification as Redsys posts them.
func notificationValues(t *testing.T, key string, params map[string]interface{}) url.Values {
	t.Helper()
	data, err := json.Marshal(params)
	require.NoError(t, err)
	raw := base64.URLEncoding.EncodeToString(data)
	order, _ := params["Ds_Order"].(string)
	signature, err := gateway.NewEncryptor(key, gateway.SignatureVersionSha256).CreateSignature(raw, order)
	require.NoError(t, err)
	return url.Values{
		gateway.FieldSignatureVersion: {gateway.SignatureVersionSha256},
		gateway.FieldParameters:       {raw},
		gateway.FieldSignature:        {signature},
	}
}

func notificationBody(t *testing.T, key string, params map[string]interface{}) string {
	return notificationValues(t, key, params).Encode()
}

func approvedNotification(order string) map[string]interface{} {
	return map[string]interface{}{
		"Ds_Amount":              "1250",
		"Ds_Currency":            "978",
		"Ds_Order":               order,
		"Ds_Response":            "0000",
		"Ds_TransactionType":     "0",
		"Ds_Merchant_Identifier": "a1b2c3d4e5f6",
	}
}
