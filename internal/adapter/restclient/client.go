package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
	"github.com/srgjo27/ticketing_client/internal/platform/metrics"
)

const maxResponseBytes = 1 << 20

// Client talks to the ticketing REST backend. It implements OrderAPI,
// PaymentAPI, WishlistAPI and SuggestionAPI.
type Client struct {
	baseURL string
	http    *http.Client
	creds   ports.CredentialProvider
	logger  *zap.Logger
	tracer  trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func NewClient(baseURL string, creds ports.CredentialProvider, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		creds:   creds,
		logger:  logger,
		tracer:  otel.Tracer("ticketing-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request. route is the path template used for span names and
// metric labels; path is the concrete, already escaped path.
func (c *Client) do(ctx context.Context, method, route, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("encode %s %s: %w", method, route, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("build %s %s: %w", method, route, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.String("request.id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveAPIRequest(method, route, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Debug("backend request failed",
			zap.String("method", method),
			zap.String("route", route),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &domain.TransientError{Op: method + " " + route, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	metrics.ObserveAPIRequest(method, route, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err != nil {
		span.RecordError(err)
		return &domain.TransientError{Op: method + " " + route, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, raw)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapData(raw), out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode %s %s: %w", method, route, err)
	}
	return nil
}

// authorize attaches the bearer token. A missing token or a failing provider
// leaves the request unauthenticated.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.creds == nil {
		return
	}
	token, err := c.creds.Token(ctx)
	if err != nil {
		c.logger.Warn("credential lookup failed, sending request without token", zap.Error(err))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// unwrapData strips the optional {"data": ...} envelope.
func unwrapData(raw []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return raw
	}
	return env.Data
}

func parseAPIError(status int, raw []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status}

	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Detail  string          `json:"detail"`
		Code    string          `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Code = body.Code

	var errText string
	if len(body.Error) > 0 {
		if err := json.Unmarshal(body.Error, &errText); err != nil {
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(body.Error, &nested) == nil {
				errText = nested.Message
			}
		}
	}
	apiErr.Message = strings.TrimSpace(firstNonEmpty(body.Message, errText, body.Detail))
	return apiErr
}
