package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"kioskd/internal/shared/config"
	"kioskd/pkg/logger"
	"kioskd/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// envelope is the tagged result every RPC resolves with. Business failures
// arrive as status != "ok" with a message; they are not transport errors.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// printResult is the printing collaborator's result shape
type printResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Client is the HTTP JSON implementation of the RPC bridge. All round-trips
// share one circuit breaker; an open breaker fails fast as ErrUnavailable.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *logger.Logger
	cfg     config.BridgeConfig
	ready   atomic.Bool
}

// NewClient creates a bridge client. The client refuses every call until
// WaitReady has observed a healthy backend.
func NewClient(cfg config.BridgeConfig, log *logger.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "kiosk-bridge",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.CallTimeout},
		breaker: breaker,
		log:     log,
		cfg:     cfg,
	}
}

// Ready reports whether the backend has signalled readiness
func (c *Client) Ready() bool {
	return c.ready.Load()
}

// WaitReady polls the backend health endpoint until it answers, the poll
// budget runs out, or ctx is cancelled. The session manager and catalog wait
// on this before issuing any call.
func (c *Client) WaitReady(ctx context.Context) error {
	deadline := time.Now().Add(c.cfg.ReadyTimeout)
	ticker := time.NewTicker(c.cfg.ReadyPoll)
	defer ticker.Stop()

	for {
		if c.probe(ctx) {
			c.ready.Store(true)
			c.log.Info("Bridge ready", "base_url", c.baseURL)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: backend did not become ready within %s", ErrUnavailable, c.cfg.ReadyTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// call performs one RPC round-trip and decodes the tagged envelope.
// out may be nil for calls whose data payload is irrelevant.
func (c *Client) call(ctx context.Context, method string, in any, out any) error {
	raw, err := c.roundTrip(ctx, method, in)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: bad envelope from %s: %v", ErrUnavailable, method, err)
	}
	if env.Status != "ok" {
		return &BusinessError{Method: method, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: bad payload from %s: %v", ErrUnavailable, method, err)
		}
	}
	return nil
}

// roundTrip posts the request body through the circuit breaker and returns
// the raw response bytes
func (c *Client) roundTrip(ctx context.Context, method string, in any) ([]byte, error) {
	if !c.Ready() {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, method)
	}

	body := []byte("{}")
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return nil, fmt.Errorf("encode %s request: %w", method, err)
		}
	}

	start := time.Now()
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/api/v1/rpc/"+method, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("http %d", resp.StatusCode)
		}

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})

	metrics.ObserveBridgeCall(method, time.Since(start), err)
	c.log.LogBridgeCall(ctx, method, time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
	}
	return raw, nil
}

// Session calls

func (c *Client) StartSession(ctx context.Context) (*SessionData, error) {
	var data SessionData
	if err := c.call(ctx, "session_start", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) TouchSession(ctx context.Context, sessionKey string) (*TouchData, error) {
	var data TouchData
	in := map[string]string{"session_key": sessionKey}
	if err := c.call(ctx, "session_touch", in, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) CloseSession(ctx context.Context, sessionKey string) error {
	in := map[string]string{"session_key": sessionKey}
	return c.call(ctx, "session_close", in, nil)
}

// Order calls

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderRef, error) {
	var ref OrderRef
	if err := c.call(ctx, "order_create_from_cart", req, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	in := map[string]int64{"order_id": orderID}
	if err := c.call(ctx, "order_get_full", in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) SetPaymentType(ctx context.Context, orderID int64, paymentType string) error {
	in := map[string]any{"order_id": orderID, "payment_type": paymentType}
	return c.call(ctx, "order_set_payment_type", in, nil)
}

func (c *Client) MarkPaid(ctx context.Context, orderID int64) error {
	return c.call(ctx, "order_mark_paid", map[string]int64{"order_id": orderID}, nil)
}

func (c *Client) MarkPrinted(ctx context.Context, orderID int64) error {
	return c.call(ctx, "order_mark_printed", map[string]int64{"order_id": orderID}, nil)
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	return c.call(ctx, "order_cancel", map[string]int64{"order_id": orderID}, nil)
}

// Catalog

func (c *Client) LoadMenu(ctx context.Context) (*Menu, error) {
	var menu Menu
	if err := c.call(ctx, "kiosk_menu_all", nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// PrintReceipt hands a receipt payload to the printing collaborator.
// Its result shape is {ok, error}, not the standard envelope.
func (c *Client) PrintReceipt(ctx context.Context, payload any) error {
	raw, err := c.roundTrip(ctx, "print_receipt", payload)
	if err != nil {
		return err
	}

	var res printResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return fmt.Errorf("%w: bad print result: %v", ErrUnavailable, err)
	}
	if !res.OK {
		msg := res.Error
		if msg == "" {
			msg = "print failed"
		}
		return &BusinessError{Method: "print_receipt", Message: msg}
	}
	return nil
}
