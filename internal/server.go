package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
	"redsys/config"
	"redsys/gateway"
	"redsys/services"
)

const (
	authorizePayment = "/authorize"
	purchasePayment  = "/purchase"
	paymentNotify    = "/notify"
	paymentResult    = "/payment/:order"
)

type Server struct {
	conf          *config.Config
	httpServer    *http.Server
	payments      services.Payments
	logger        services.LogHandler
	notifyLimiter *rate.Limiter
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}
	if conf.Notify.Rate > 0 {
		server.notifyLimiter = rate.NewLimiter(rate.Limit(conf.Notify.Rate), conf.Notify.Burst)
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(authorizePayment, s.authorize)
	router.POST(purchasePayment, s.purchase)
	router.POST(paymentNotify, s.paymentNotify)
	router.GET(paymentResult, s.paymentResult)
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.initiate(w, r, "authorize", s.payments.Authorize)
}

func (s *Server) purchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.initiate(w, r, "purchase", s.payments.Purchase)
}

type initiateFunc func(ctx context.Context, params gateway.RequestParams) (gateway.Response, error)

func (s *Server) initiate(w http.ResponseWriter, r *http.Request, operation string, initiate initiateFunc) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] %s: read request body", reqID, operation), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var params gateway.RequestParams
	if err = json.Unmarshal(body, &params); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] %s: decode request body: %v", reqID, operation, err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	response, err := initiate(ctx, params)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] %s order %s", reqID, operation, params.Order), err)
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, reqID, response)
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if s.notifyLimiter != nil && !s.notifyLimiter.Allow() {
		s.logger.Warn(fmt.Sprintf("[%s] payment notify: rate limit exceeded", reqID))
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: get body", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	_, err = s.payments.Notify(ctx, body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: process body", reqID), err)
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) paymentResult(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	order := ps.ByName("order")
	if order == "" {
		s.logger.Warn(fmt.Sprintf("[%s] empty order", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := s.payments.GetPaymentResult(ctx, order)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error(fmt.Sprintf("[%s] payment result %s", reqID, order), err)
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, reqID, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, reqID string, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] encode response", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, gateway.ErrBadSignature):
		w.WriteHeader(http.StatusForbidden)
	case isClientError(err):
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
