package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"redsys/entity"
	"redsys/gateway"
)

// --- Mocks ---

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) Authorize(ctx context.Context, params gateway.RequestParams) (gateway.Response, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Response), args.Error(1)
}

func (m *MockPayments) Purchase(ctx context.Context, params gateway.RequestParams) (gateway.Response, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Response), args.Error(1)
}

func (m *MockPayments) Notify(ctx context.Context, data []byte) (*gateway.CallbackResponse, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CallbackResponse), args.Error(1)
}

func (m *MockPayments) GetPaymentResult(ctx context.Context, order string) (*entity.PaymentParameters, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentParameters), args.Error(1)
}

// --- Tests ---

func newTestServer(payments *MockPayments) (*Server, http.Handler) {
	server := NewServer(newTestConfig())
	server.SetPaymentsService(payments)
	logger, _ := newTestLogger(nil)
	server.SetLogger(logger)
	return server, server.httpServer.Handler
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
	return recorder
}

func TestServer_Purchase(t *testing.T) {
	t.Run("Redirect", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		redirect := &gateway.RedirectResponse{
			URL: "https://sis-t.redsys.es:25443/sis/realizarPago",
			Form: entity.PaymentRequest{
				Parameters:       "eyJEU19NRVJDSEFOVF9PUkRFUiI6IjEyMzQifQ==",
				Signature:        "c2lnbmF0dXJl",
				SignatureVersion: gateway.SignatureVersionSha256,
			},
		}
		payments.On("Purchase", mock.Anything, mock.MatchedBy(func(p gateway.RequestParams) bool {
			return p.Order == "1234" && p.Amount.Equal(decimal.RequireFromString("9.99"))
		})).Return(redirect, nil)

		recorder := serve(handler, http.MethodPost, "/purchase", `{"amount":"9.99","order":"1234"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, redirect.URL, body["url"])
		form := body["form"].(map[string]interface{})
		assert.Equal(t, gateway.SignatureVersionSha256, form["Ds_SignatureVersion"])
		payments.AssertExpectations(t)
	})

	t.Run("BadBody", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		recorder := serve(handler, http.MethodPost, "/purchase", `{"amount":`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		payments.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything)
	})
}

func TestServer_AuthorizeErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"InvalidParameters", fmt.Errorf("%w: order", gateway.ErrInvalidParameters), http.StatusBadRequest},
		{"Incompatible", &gateway.PayMethodError{Method: entity.PayMethodBizum, TransactionType: entity.TransactionPreauthorization, Err: gateway.ErrIncompatibleCombination}, http.StatusBadRequest},
		{"Transport", fmt.Errorf("%w: status 503", gateway.ErrTransport), http.StatusInternalServerError},
		{"Unexpected", errors.New("merchant not configured"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payments := new(MockPayments)
			_, handler := newTestServer(payments)
			payments.On("Authorize", mock.Anything, mock.Anything).Return(nil, c.err)

			recorder := serve(handler, http.MethodPost, "/authorize", `{"amount":"1","order":"1234"}`)
			assert.Equal(t, c.status, recorder.Code)
			payments.AssertExpectations(t)
		})
	}
}

func TestServer_Notify(t *testing.T) {
	body := "Ds_SignatureVersion=HMAC_SHA256_V1&Ds_MerchantParameters=e30&Ds_Signature=abc"

	t.Run("Accepted", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		payments.On("Notify", mock.Anything, []byte(body)).Return(&gateway.CallbackResponse{SignatureValid: true}, nil)

		recorder := serve(handler, http.MethodPost, "/notify", body)
		assert.Equal(t, http.StatusOK, recorder.Code)
		payments.AssertExpectations(t)
	})

	t.Run("BadSignature", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		payments.On("Notify", mock.Anything, mock.Anything).
			Return(&gateway.CallbackResponse{}, fmt.Errorf("order 1234: %w", gateway.ErrBadSignature))

		recorder := serve(handler, http.MethodPost, "/notify", body)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Malformed", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		payments.On("Notify", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: %w", gateway.ErrCallback, gateway.ErrMalformedNotification))

		recorder := serve(handler, http.MethodPost, "/notify", "garbage")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("RateLimited", func(t *testing.T) {
		payments := new(MockPayments)
		server, handler := newTestServer(payments)
		server.notifyLimiter.SetLimit(0)
		server.notifyLimiter.SetBurst(1)
		payments.On("Notify", mock.Anything, mock.Anything).Return(&gateway.CallbackResponse{SignatureValid: true}, nil).Once()

		assert.Equal(t, http.StatusOK, serve(handler, http.MethodPost, "/notify", body).Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(handler, http.MethodPost, "/notify", body).Code)
		payments.AssertNumberOfCalls(t, "Notify", 1)
	})
}

func TestServer_PaymentResult(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		payments.On("GetPaymentResult", mock.Anything, "1234ABCD").
			Return(&entity.PaymentParameters{Order: "1234ABCD", Response: "0000", SignatureValid: true}, nil)

		recorder := serve(handler, http.MethodGet, "/payment/1234ABCD", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		var result entity.PaymentParameters
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
		assert.Equal(t, "1234ABCD", result.Order)
		assert.Equal(t, "0000", result.Response)
	})

	t.Run("NotFound", func(t *testing.T) {
		payments := new(MockPayments)
		_, handler := newTestServer(payments)
		payments.On("GetPaymentResult", mock.Anything, "9999").Return(nil, ErrNotFound)

		recorder := serve(handler, http.MethodGet, "/payment/9999", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
