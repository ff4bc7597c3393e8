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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/common"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

// Session is the part of the session store the adapter needs: the current
// token for outbound calls and a way to drop credentials on 401.
type Session interface {
	Token(ctx context.Context) (string, error)
	ClearAuth(ctx context.Context) error
}

// Options configures an HTTPClient.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     logging.Logger

	// OnSessionInvalidated is called after a 401 has cleared the session.
	// It is the "navigate to login" signal of the view layer.
	OnSessionInvalidated func(ctx context.Context)

	// AtLoginEntry reports whether the login entry point is the current view;
	// OnSessionInvalidated is not fired while it returns true.
	AtLoginEntry func() bool
}

type HTTPClient struct {
	baseURL      string
	http         *http.Client
	session      Session
	logger       logging.Logger
	onInvalidate func(ctx context.Context)
	atLoginEntry func() bool
}

// New builds an adapter bound to session.
func New(session Session, opts Options) (*HTTPClient, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("client: empty base URL")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("client: bad base URL: %w", err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &HTTPClient{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		http:         hc,
		session:      session,
		logger:       logger,
		onInvalidate: opts.OnSessionInvalidated,
		atLoginEntry: opts.AtLoginEntry,
	}, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends a JSON request. body (if not nil) is JSON-encoded; the response
// body is decoded into out (if not nil).
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}

	return c.send(req, path, out)
}

// Part is one part of a multipart request.
type Part struct {
	Field       string
	FileName    string // empty for non-file parts
	ContentType string
	Data        []byte
}

// PostMultipart sends parts as multipart/form-data.
func (c *HTTPClient) PostMultipart(ctx context.Context, path string, parts []Part, out any) error {
	body, contentType, err := encodeMultipart(parts)
	if err != nil {
		return fmt.Errorf("encode multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req, path, out)
}

// newRequest is the outbound interception point.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	return req, nil
}

// send performs the call and is the inbound interception point.
func (c *HTTPClient) send(req *http.Request, path string, out any) error {
	ctx := req.Context()
	log := c.logger.With("method", req.Method, "path", path, "request_id", req.Header.Get(common.RequestIDHeaderName))
	started := time.Now()

	log.Debug(ctx, "request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &APIError{Kind: KindNetwork, Method: req.Method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return &APIError{Kind: KindNetwork, Status: resp.StatusCode, Method: req.Method, Path: path, Err: err}
	}

	log.Debug(ctx, "response", "status", resp.StatusCode, "duration", time.Since(started), "bytes", len(data))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(data),
			Method:  req.Method,
			Path:    path,
		}
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "message", apiErr.Message)

		if apiErr.Kind == KindUnauthorized {
			c.invalidateSession(ctx)
		}
		return apiErr
	}

	if err := decodeBody(data, out); err != nil {
		log.Warn(ctx, "decoding response failed", "status", resp.StatusCode, "error", err)
		return &APIError{Kind: KindDecode, Status: resp.StatusCode, Method: req.Method, Path: path, Err: err}
	}
	return nil
}

// invalidateSession drops the credentials and signals the view layer once.
func (c *HTTPClient) invalidateSession(ctx context.Context) {
	if err := c.session.ClearAuth(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error(ctx, "clearing session after 401 failed", "error", err)
	}

	if c.atLoginEntry != nil && c.atLoginEntry() {
		return
	}
	if c.onInvalidate != nil {
		c.onInvalidate(ctx)
	}
}

func errorMessage(data []byte) string {
	var er models.ErrorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Message != "" {
		return er.Message
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 || strings.HasPrefix(s, "{") || strings.HasPrefix(s, "<") {
		return ""
	}
	return s
}

// decodeBody decodes JSON into out. *string targets also accept a bare JSON
// number or plain text, as returned by the listing registration endpoint.
func decodeBody(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if s, ok := out.(*string); ok {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			*s = strings.TrimSpace(string(data))
			return nil
		}
		switch value := v.(type) {
		case string:
			*s = value
		case float64, json.Number:
			*s = strings.TrimSpace(string(data))
		default:
			return fmt.Errorf("unexpected JSON %T for string result", v)
		}
		return nil
	}

	return json.Unmarshal(data, out)
}
