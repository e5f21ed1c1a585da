package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// intentNamespace seeds deterministic idempotency keys so a retried call
// for the same order always addresses the same gateway session.
var intentNamespace = uuid.MustParse("9f2c1f6e-8f4a-4a51-b7a3-5d1c2e7a90d4")

// IdempotencyKey derives the stable gateway idempotency key for an order.
func IdempotencyKey(orderID int64) string {
	return uuid.NewSHA1(intentNamespace, []byte(strconv.FormatInt(orderID, 10))).String()
}

// TooManyRequestsError represents a rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the external payment gateway.
type Client interface {
	// CreateIntent opens a payment session for the order. The call is
	// idempotent: retries return the existing session and its current outcome.
	CreateIntent(ctx context.Context, orderID int64, amountCents int64, currency string) (*model.PaymentIntent, error)
}

// HTTPClient implements Client via the gateway HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
}

// Options tunes retry behaviour of the gateway client.
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

type intentRequest struct {
	OrderID  int64  `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// NewHTTPClient creates the gateway client with bounded per-attempt timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger, opts Options) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		maxRetries: maxRetries,
		backoff:    backoff,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// CreateIntent opens or re-opens the payment session for the order,
// retrying transient gateway failures with backoff before surfacing
// ErrGatewayUnavailable.
func (c *HTTPClient) CreateIntent(ctx context.Context, orderID int64, amountCents int64, currency string) (*model.PaymentIntent, error) {
	payload, err := json.Marshal(intentRequest{OrderID: orderID, Amount: amountCents, Currency: currency})
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/intents")

	delay := c.backoff
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		intent, retryable, err := c.createIntentOnce(ctx, endpoint.String(), payload, orderID)
		if err == nil {
			return intent, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
		c.logger.Warn("payment gateway attempt failed",
			slog.Int64("order_id", orderID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}

	return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, lastErr)
}

func (c *HTTPClient) createIntentOnce(ctx context.Context, endpoint string, payload []byte, orderID int64) (*model.PaymentIntent, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", IdempotencyKey(orderID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, err
		}
		var data intentResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, false, err
		}
		return &model.PaymentIntent{
			ID:           data.ID,
			ClientSecret: data.ClientSecret,
			Outcome:      model.PaymentOutcome(data.Status),
		}, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, false, TooManyRequestsError{RetryAfter: retryAfter}
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("gateway error: %s", resp.Status)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment gateway rejected request",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, false, fmt.Errorf("gateway rejected intent: %s", resp.Status)
	}
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
