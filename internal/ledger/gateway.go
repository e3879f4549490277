package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is how long a single request may take before it is
// abandoned and classified as a timeout.
const DefaultTimeout = 10 * time.Second

// Config describes how to reach the ledger service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Gateway is the single point of outbound request construction and inbound
// error classification. Successful payloads pass through undecoded beyond
// plain JSON; the gateway never interprets their semantics.
type Gateway struct {
	base   string
	client *http.Client
	logger *slog.Logger
}

// NewGateway creates a Gateway for the given endpoint.
func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// do issues one JSON request and decodes the response into out when out is
// non-nil. Every failure comes back as a classified *Error.
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return g.fail(&Error{Kind: KindUnknown, Message: "an unexpected error occurred", Err: err})
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, reqBody)
	if err != nil {
		return g.fail(&Error{Kind: KindUnknown, Message: "an unexpected error occurred", Err: err})
	}
	req.Header.Set("Content-Type", "application/json")

	g.logger.Info("ledger request", slog.String("method", method), slog.String("path", path))

	resp, err := g.client.Do(req)
	if err != nil {
		return g.fail(classifyTransport(err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return g.fail(classifyStatus(resp))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return g.fail(&Error{Kind: KindUnknown, Message: "an unexpected error occurred", Err: err})
	}
	return nil
}

// fail logs a classified error before handing it back to the caller.
func (g *Gateway) fail(e *Error) error {
	g.logger.Error("ledger request failed",
		slog.String("kind", e.Kind.String()),
		slog.Int("status", e.Status),
		slog.String("message", e.Message),
		slog.Any("error", e.Err),
	)
	return e
}

// classifyTransport maps errors where no usable response arrived.
func classifyTransport(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: "request timeout, please check your connection", Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// The request went out but no reply ever came back.
		return &Error{Kind: KindNetworkUnreachable, Message: "network error, please check that the ledger service is running", Err: err}
	}
	return &Error{Kind: KindUnknown, Message: "an unexpected error occurred", Err: err}
}

// classifyStatus maps non-2xx responses.
func classifyStatus(resp *http.Response) *Error {
	status := resp.StatusCode
	switch {
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: "service not found, please check that the ledger service is running"}
	case status >= 500 && status < 600:
		return &Error{Kind: KindServerError, Status: status, Message: "server error, please try again later"}
	case status >= 400:
		e := &Error{Kind: KindClientError, Status: status, Message: "client error occurred"}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			e.Message = payload.Message
			e.BackendMessage = payload.Message
		}
		return e
	default:
		return &Error{Kind: KindUnknown, Status: status, Message: "an unexpected error occurred"}
	}
}
