// Package api is the HTTP client for the FoodScan backend: image analysis,
// history listing and entry deletion.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/JoacoWn/FoodScan/internal/food"
)

// Backend routes.
const (
	pathAnalyze = "analizar"
	pathHistory = "historial"
)

// RequestIDHeader carries the per-request UUID.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps response bodies read into memory.
const maxBodyBytes = 32 << 20

// maxMessageRunes caps plain-text error bodies kept in Error.Message.
const maxMessageRunes = 200

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithRequestIDs overrides the request ID generator.
func WithRequestIDs(gen func() string) ClientOption {
	return func(c *Client) { c.newID = gen }
}

// Client talks to the FoodScan backend. It is safe for concurrent use:
// concurrent ListHistory calls share one request and DeleteEntry calls run
// one at a time.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     *slog.Logger
	newID   func() string
	history singleflight.Group
	deletes *semaphore.Weighted
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("api: invalid base URL %q", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
		newID:   func() string { return uuid.New().String() },
		deletes: semaphore.NewWeighted(1),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string) string {
	return c.base.ResolveReference(&url.URL{Path: path}).String()
}

// AnalyzeImage uploads an image for analysis. mealType is sent as the
// meal_type form field. The backend stores the resulting entry.
func (c *Client) AnalyzeImage(ctx context.Context, image io.Reader, filename, mealType string) (*food.AnalysisResult, error) {
	op := "POST /" + pathAnalyze
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("meal_type", mealType); err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Message: "failed to build form", Err: err}
	}
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Message: "failed to build form", Err: err}
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Message: "failed to read image", Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Message: "failed to build form", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(pathAnalyze), &body)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, err := c.do(req, op)
	if err != nil {
		return nil, err
	}

	var result food.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Message: "invalid analysis result", Err: err}
	}
	return &result, nil
}

// ListHistory fetches every logged entry. Concurrent calls share one
// request; each caller gets its own copy of the slice and may stop waiting
// when its ctx is done.
func (c *Client) ListHistory(ctx context.Context) ([]food.Entry, error) {
	ch := c.history.DoChan(pathHistory, func() (any, error) {
		// The shared fetch must not die with whichever caller started it.
		return c.fetchHistory(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.log.Debug("history fetch coalesced")
		}
		return slices.Clone(res.Val.([]food.Entry)), nil
	case <-ctx.Done():
		return nil, &Error{Kind: KindTransport, Op: "GET /" + pathHistory, Err: ctx.Err()}
	}
}

func (c *Client) fetchHistory(ctx context.Context) ([]food.Entry, error) {
	op := "GET /" + pathHistory
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(pathHistory), nil)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Message: "failed to create request", Err: err}
	}

	data, err := c.do(req, op)
	if err != nil {
		return nil, err
	}

	var entries []food.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Message: "invalid history payload", Err: err}
	}

	legacy := 0
	for _, e := range entries {
		if e.Schema == food.SchemaLegacy {
			legacy++
		}
	}
	if legacy > 0 {
		c.log.Info("history contains entries in the deprecated schema", "count", legacy)
	}
	return entries, nil
}

// DeleteEntry deletes one entry by ID. Only one delete runs at a time;
// waiting for the slot honours ctx.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &Error{Kind: KindRequest, Op: "DELETE /" + pathHistory, Message: "entry ID is required"}
	}

	path := pathHistory + "/" + url.PathEscape(id)
	op := "DELETE /" + path
	if err := c.deletes.Acquire(ctx, 1); err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer c.deletes.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base.String()+path, nil)
	if err != nil {
		return &Error{Kind: KindRequest, Op: op, Message: "failed to create request", Err: err}
	}

	_, err = c.do(req, op)
	return err
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.Debug("backend request", "op", op, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable", "op", op, "request_id", reqID, "error", err)
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	c.log.Debug("backend response", "op", op, "request_id", reqID,
		"status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(op, resp.StatusCode, data)
		c.log.Warn("backend error", "op", op, "request_id", reqID, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}
	return data, nil
}

// errorBody is the backend's JSON error shape.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func statusError(op string, status int, data []byte) *Error {
	e := &Error{Kind: KindStatus, Op: op, StatusCode: status, Err: ErrStatus}

	var body errorBody
	if json.Unmarshal(data, &body) == nil && (body.Error != "" || body.Details != "") {
		e.Message = body.Error
		e.Details = body.Details
		return e
	}

	if text := strings.TrimSpace(string(data)); text != "" && !strings.HasPrefix(text, "<") {
		if runes := []rune(text); len(runes) > maxMessageRunes {
			text = string(runes[:maxMessageRunes-3]) + "..."
		}
		e.Message = text
	}
	return e
}
