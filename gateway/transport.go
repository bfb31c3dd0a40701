package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport posts a JSON body to the Redsys REST endpoint and returns the reply body.
type Transport interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
}

type HTTPTransport struct {
	httpClient *http.Client
}

// NewHTTPTransport creates a transport with timeouts and connection pooling.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (t *HTTPTransport) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create http request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: request timeout or cancelled: %v", ErrTransport, ctx.Err())
		}
		return nil, fmt.Errorf("%w: post request: %v", ErrTransport, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(response.Body)

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, response.StatusCode)
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}
	return data, nil
}
