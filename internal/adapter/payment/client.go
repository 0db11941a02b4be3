package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDeclined indicates the gateway rejected the charge.
var ErrDeclined = errors.New("payment declined")

// TooManyRequestsError represents a rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the external card-payment gateway.
type Client interface {
	Charge(ctx context.Context, amount decimal.Decimal, reference string) (string, error)
	Refund(ctx context.Context, gatewayRef string, amount decimal.Decimal) error
}

// HTTPClient implements Client via the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type chargeRequest struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type refundRequest struct {
	Amount string `json:"amount"`
}

// NewHTTPClient creates the gateway client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Charge submits a charge and returns the gateway reference on success.
func (c *HTTPClient) Charge(ctx context.Context, amount decimal.Decimal, reference string) (string, error) {
	body, err := json.Marshal(chargeRequest{Amount: amount.StringFixed(2), Reference: reference})
	if err != nil {
		return "", err
	}

	resp, err := c.post(ctx, "/api/charges", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data chargeResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", err
		}
		return data.ID, nil
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		return "", ErrDeclined
	case http.StatusTooManyRequests:
		return "", TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway charge failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}
}

// Refund returns a captured charge to the customer.
func (c *HTTPClient) Refund(ctx context.Context, gatewayRef string, amount decimal.Decimal) error {
	body, err := json.Marshal(refundRequest{Amount: amount.StringFixed(2)})
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, path.Join("/api/charges", gatewayRef, "refund"), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway refund failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func (c *HTTPClient) post(ctx context.Context, endpointPath string, body []byte) (*http.Response, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
