package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/models"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 30 * time.Second

// Default history listing parameters, matching the server's own defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	DefaultSort     = "created_at"
	DefaultOrder    = "desc"
)

// envelopeSuccess is the ApiResponse code the service uses for success.
const envelopeSuccess = 0

// Client is a stateless adapter over the detection service's REST API.
// It performs no retries and holds no request state; lifecycle policy
// belongs to the orchestrator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a detection client for the service rooted at baseURL
// (e.g. "http://localhost:8080/api/v1").
func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.Named("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams are the history listing knobs. Zero values fall back to the
// service defaults; they are passed through otherwise, unvalidated.
type ListParams struct {
	Page     int
	PageSize int
	Sort     string
	Order    string
}

func (p ListParams) withDefaults() ListParams {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	if p.Order == "" {
		p.Order = DefaultOrder
	}
	return p
}

// SubmitDetection submits text for detection and returns the scored result.
// The server computes all scores; the client does not retry.
func (c *Client) SubmitDetection(ctx context.Context, req models.DetectionRequest) (*models.DetectionResult, error) {
	return doJSON[models.DetectionResult](c, ctx, "submit detection", http.MethodPost, "/detect", req)
}

// FetchDetection retrieves a detection result by its id.
func (c *Client) FetchDetection(ctx context.Context, id string) (*models.DetectionResult, error) {
	return doJSON[models.DetectionResult](c, ctx, "fetch detection", http.MethodGet, "/detect/"+url.PathEscape(id), nil)
}

// ListHistory fetches one page of the detection history.
func (c *Client) ListHistory(ctx context.Context, params ListParams) (*models.HistoryListResult, error) {
	p := params.withDefaults()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	q.Set("sort", p.Sort)
	q.Set("order", p.Order)
	return doJSON[models.HistoryListResult](c, ctx, "list history", http.MethodGet, "/history?"+q.Encode(), nil)
}

// FetchHistory retrieves a single history entry as a full detection result.
// History ids share the identity space of SubmitDetection results.
func (c *Client) FetchHistory(ctx context.Context, id string) (*models.DetectionResult, error) {
	return doJSON[models.DetectionResult](c, ctx, "fetch history", http.MethodGet, "/history/"+url.PathEscape(id), nil)
}

// DeleteHistory removes one history entry. Deleting an id that no longer
// exists is not an error.
func (c *Client) DeleteHistory(ctx context.Context, id string) error {
	err := c.doVoid(ctx, "delete history", http.MethodDelete, "/history/"+url.PathEscape(id))
	if IsNotFound(err) {
		return nil
	}
	return err
}

// DeleteAllHistory unconditionally clears the detection history.
func (c *Client) DeleteAllHistory(ctx context.Context) error {
	return c.doVoid(ctx, "delete all history", http.MethodDelete, "/history")
}

// envelope is the uniform ApiResponse wrapper around every service reply.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON issues a request and decodes the envelope's data into T. A success
// code with no data payload is a contract violation and surfaces as a
// DecodeError, never as a nil result.
func doJSON[T any](c *Client, ctx context.Context, op, method, path string, body any) (*T, error) {
	env, err := c.roundTrip(ctx, op, method, path, body)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, &DecodeError{Op: op, Reason: "success envelope carries no data"}
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, &DecodeError{Op: op, Reason: "malformed data payload", Err: err}
	}
	return &out, nil
}

// doVoid issues a request whose success envelope carries no payload.
func (c *Client) doVoid(ctx context.Context, op, method, path string) error {
	_, err := c.roundTrip(ctx, op, method, path, nil)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, &DecodeError{Op: op, Reason: "request encoding failed", Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(op, err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{
			Op:     op,
			Reason: fmt.Sprintf("malformed envelope (http %d)", resp.StatusCode),
			Err:    err,
		}
	}
	if env.Code != envelopeSuccess {
		return nil, &ServiceError{Op: op, Code: env.Code, Message: env.Message}
	}
	return &env, nil
}

func (c *Client) transportError(op string, err error) error {
	te := &TransportError{Op: op, Err: err}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		te.Timeout = true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		te.Timeout = true
	}
	return te
}
