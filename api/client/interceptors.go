package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
	"github.com/blossomapp/client/pkg/logger"
)

// RequestInterceptor mutates an outgoing request before transport.
type RequestInterceptor func(ctx context.Context, req *fasthttp.Request) error

// ResponseInterceptor observes an incoming response before status mapping.
// It may cause side effects but never alters the outcome the caller sees.
type ResponseInterceptor func(ctx context.Context, resp *fasthttp.Response)

// BearerInterceptor attaches the persisted token as an Authorization header.
// A request with no stored token goes out anonymous. A keystore read fault is
// surfaced as a storage fault rather than sending a request the backend will
// reject anyway.
func BearerInterceptor(keys keystore.Store) RequestInterceptor {
	return func(ctx context.Context, req *fasthttp.Request) error {
		if keys == nil {
			return nil
		}
		token, ok, err := keys.Get(ctx, keystore.TokenKey)
		if err != nil {
			return domain.WrapError(domain.ErrCodeStorage, "read persisted token", err)
		}
		if ok && token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
		return nil
	}
}

// RequestIDInterceptor stamps every outgoing request with an X-Request-ID,
// reusing one already carried by the context so response-side logging
// correlates with the header the backend saw.
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *fasthttp.Request) error {
		reqID := logger.RequestIDFromContext(ctx)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		req.Header.Set("X-Request-ID", reqID)
		return nil
	}
}

// AuthFaultInterceptor deletes the persisted token when the backend answers
// 401. It deliberately touches only the persistence layer: the in-memory
// session notices the missing token on its next resolution, and the original
// failure still reaches the caller unchanged.
func AuthFaultInterceptor(keys keystore.Store, log *zap.Logger) ResponseInterceptor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, resp *fasthttp.Response) {
		if resp.StatusCode() != http.StatusUnauthorized || keys == nil {
			return
		}
		if err := keys.Delete(ctx, keystore.TokenKey); err != nil {
			logger.WithRequestID(ctx, log).Warn("failed to clear invalidated token", zap.Error(err))
			return
		}
		logger.WithRequestID(ctx, log).Info("persisted token cleared after authorization failure")
	}
}
