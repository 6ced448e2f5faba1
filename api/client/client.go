// Package client is the single HTTP entry point for all Blossom API calls.
// Two cross-cutting behaviors are layered on every request as explicit
// interceptors: bearer-token attachment on the way out and persisted-token
// invalidation on a 401 on the way in. The persisted store, not the in-memory
// session, is the source of truth for attachment, so requests issued before
// the session finishes loading still carry the credential.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
	"github.com/blossomapp/client/pkg/logger"
)

// Config controls the transport behavior of the client.
type Config struct {
	BaseURL        string
	Prefix         string
	RequestTimeout time.Duration
	UserAgent      string
}

// Client wraps fasthttp with the interceptor chain and typed endpoint methods.
type Client struct {
	http       *fasthttp.Client
	cfg        Config
	logger     *zap.Logger
	onRequest  []RequestInterceptor
	onResponse []ResponseInterceptor
}

// New builds a client with the default interceptor chain wired against the
// provided keystore.
func New(cfg Config, keys keystore.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "/api"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "blossom-client"
	}

	return &Client{
		http: &fasthttp.Client{
			Name:         cfg.UserAgent,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		cfg:    cfg,
		logger: logger,
		onRequest: []RequestInterceptor{
			RequestIDInterceptor(),
			BearerInterceptor(keys),
		},
		onResponse: []ResponseInterceptor{
			AuthFaultInterceptor(keys, logger),
		},
	}
}

// call options shared by the verb helpers.
type callOpts struct {
	query   url.Values
	headers map[string]string
}

func (c *Client) get(ctx context.Context, path string, opts callOpts, out any) error {
	return c.do(ctx, fasthttp.MethodGet, path, opts, nil, out)
}

func (c *Client) post(ctx context.Context, path string, opts callOpts, body, out any) error {
	return c.do(ctx, fasthttp.MethodPost, path, opts, body, out)
}

func (c *Client) put(ctx context.Context, path string, opts callOpts, body, out any) error {
	return c.do(ctx, fasthttp.MethodPut, path, opts, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, opts callOpts, body, out any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	uri := c.cfg.BaseURL + c.cfg.Prefix + path
	if len(opts.query) > 0 {
		uri += "?" + opts.query.Encode()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "encode request body", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.ContextWithRequestID(ctx, uuid.NewString())
	}

	for _, intercept := range c.onRequest {
		if err := intercept(ctx, req); err != nil {
			return err
		}
	}

	deadline := time.Now().Add(c.cfg.RequestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return domain.WrapError(domain.ErrCodeTransport, fmt.Sprintf("%s %s", method, path), err)
	}

	for _, intercept := range c.onResponse {
		intercept(ctx, resp)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return c.faultFromResponse(method, path, status, resp.Body())
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, fmt.Sprintf("decode %s %s response", method, path), err)
		}
	}
	return nil
}

// faultFromResponse maps a non-2xx response onto the domain taxonomy. A
// structured {"detail": ...} payload carries its message through; anything
// else degrades to a generic fault for its status.
func (c *Client) faultFromResponse(method, path string, status int, body []byte) error {
	var payload transport.ErrorResponse
	detail := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
	}

	code := domain.ErrCodeInternal
	var sentinel *domain.Error
	switch {
	case status == http.StatusUnauthorized:
		code, sentinel = domain.ErrCodeUnauthorized, domain.ErrUnauthorized
	case status == http.StatusNotFound:
		code, sentinel = domain.ErrCodeNotFound, domain.ErrNotFound
	case detail != "" && status < http.StatusInternalServerError:
		code, sentinel = domain.ErrCodeInvalid, domain.ErrInvalidInput
	}

	if detail == "" {
		detail = fmt.Sprintf("%s %s failed with status %d", method, path, status)
	}
	if sentinel != nil {
		return domain.WrapError(code, detail, sentinel)
	}
	return domain.NewError(code, detail)
}
