package backendhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/domain/model/session"
	"agenthub/internal/core/ports"
	"agenthub/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.AgentBackend over the backend's REST surface.
// Every call carries the session credential as a bearer token.
type Client struct {
	baseURL *url.URL
	session session.Session
	client  *http.Client
}

// NewClient creates a backend client for one agent session.
//
// Parameters:
//   - baseURL: Backend root, e.g. "https://backend.example.com"
//   - sess: The agent's session (required, supplies the bearer credential)
//   - timeout: Per-call timeout; zero selects a default of 10s
func NewClient(baseURL string, sess session.Session, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: parsed,
		session: sess,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// FetchHistory retrieves the agent's order snapshot from GET /agent/history.
func (c *Client) FetchHistory(ctx context.Context) ([]*order.Order, error) {
	body, err := c.call(ctx, http.MethodGet, "/agent/history")
	if err != nil {
		return nil, err
	}

	var payload historyEnvelope
	if err = json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("history payload is malformed: %w", errors.Join(ports.ErrBackendRejected, err))
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("history fetch returned status %q: %w", payload.Status, ports.ErrBackendRejected)
	}

	orders := make([]*order.Order, 0, len(payload.Data))
	for _, dto := range payload.Data {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, fmt.Errorf("history entry %q is malformed: %w", dto.OrderID, convErr)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// AcceptOrder records the agent's acceptance via POST /agent/accept-order/{orderId}.
func (c *Client) AcceptOrder(ctx context.Context, orderID kernel.UUID) error {
	return c.action(ctx, "/agent/accept-order/", orderID)
}

// RejectOrder records the agent's rejection via POST /agent/reject-order/{orderId}.
func (c *Client) RejectOrder(ctx context.Context, orderID kernel.UUID) error {
	return c.action(ctx, "/agent/reject-order/", orderID)
}

func (c *Client) action(ctx context.Context, prefix string, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	body, err := c.call(ctx, http.MethodPost, prefix+orderID.String())
	if err != nil {
		return err
	}

	var payload envelope
	if err = json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("action response is malformed: %w", errors.Join(ports.ErrBackendRejected, err))
	}
	if payload.Status != "success" {
		return fmt.Errorf("backend returned status %q: %w", payload.Status, ports.ErrBackendRejected)
	}
	return nil
}

// call issues one request and classifies the outcome: transport-level
// failures map to ErrNetworkFailure, completed calls with a non-2xx code map
// to ErrBackendRejected, and a 2xx body is returned for envelope inspection.
func (c *Client) call(ctx context.Context, method, path string) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Credential())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s did not complete: %w", method, path, errors.Join(ports.ErrNetworkFailure, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s response truncated: %w", method, path, errors.Join(ports.ErrNetworkFailure, err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s returned HTTP %d: %w", method, path, resp.StatusCode, ports.ErrBackendRejected)
	}
	return body, nil
}
