package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zaimara-studio/storefront/pkg/config"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/metrics"
)

const (
	errorBodyReadLimit int64 = 2048

	headerRequestID = "X-Request-ID"
)

// TokenSource supplies the admin bearer token attached to back-office calls.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the typed HTTP client for the storefront backend contract. All
// paths are relative to the configured base URL (which already ends in /api).
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	tokens     TokenSource
	logg       *logger.Logger
	callStats  *metrics.APICallMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource wires the admin bearer token provider.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger attaches the structured logger.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics wires outbound call instrumentation.
func WithMetrics(callStats *metrics.APICallMetrics) Option {
	return func(c *Client) {
		c.callStats = callStats
	}
}

// NewClient builds the backend client from configuration.
func NewClient(cfg config.APIConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client, nil
}

// apiError is the error envelope the backend returns on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type request struct {
	operation   string
	method      string
	path        string
	query       url.Values
	body        any       // JSON-encoded when non-nil
	multipart   io.Reader // takes precedence over body
	contentType string
	authed      bool
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	started := time.Now()
	err := c.execute(ctx, req, out)
	c.callStats.ObserveDuration(req.operation, time.Since(started))
	if err != nil {
		c.callStats.IncFailure(req.operation, string(pkgerrors.As(err).Code()))
		return err
	}
	c.callStats.IncSuccess(req.operation)
	return nil
}

func (c *Client) execute(ctx context.Context, req request, out any) error {
	target := c.buildURL(req.path)
	if len(req.query) > 0 {
		target = target + "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := req.contentType
	switch {
	case req.multipart != nil:
		body = req.multipart
	case req.body != nil:
		payload, err := json.Marshal(req.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(headerRequestID, requestID)

	if req.authed {
		if err := c.attachToken(ctx, httpReq); err != nil {
			return err
		}
	}

	if c.logg != nil {
		logCtx := c.logg.WithRequestID(ctx, requestID)
		logCtx = c.logg.WithOperation(logCtx, req.operation)
		c.logg.Debug(logCtx, "backend call")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s request failed", req.operation))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapErrorResponse(req.operation, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", req.operation))
	}
	return nil
}

func (c *Client) attachToken(ctx context.Context, httpReq *http.Request) error {
	if c.tokens == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no admin credentials configured")
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session expired")
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *Client) mapErrorResponse(operation string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope apiError
	_ = json.Unmarshal(raw, &envelope)
	message := strings.TrimSpace(envelope.text())
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.New(pkgerrors.CodeValidation, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case http.StatusConflict:
		return pkgerrors.New(pkgerrors.CodeConflict, message)
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, message).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

// multipartBody assembles a multipart form from fields plus optional file parts.
type filePart struct {
	field    string
	filename string
	content  io.Reader
}

func multipartBody(fields map[string]string, files ...filePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", key, err)
		}
	}
	for _, file := range files {
		if file.content == nil {
			continue
		}
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %q: %w", file.field, err)
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", fmt.Errorf("copy file part %q: %w", file.field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
