package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDContextRoundTrip(t *testing.T) {
	require.Empty(t, RequestIDFromContext(context.Background()))

	ctx := ContextWithRequestID(context.Background(), "req_7f3a")
	require.Equal(t, "req_7f3a", RequestIDFromContext(ctx))
}

func TestWithRequestIDEnrichesEntries(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req_7f3a")
	WithRequestID(ctx, base).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "req_7f3a", entries[0].ContextMap()["request_id"])
}

func TestWithRequestIDWithoutIDLeavesLoggerBare(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	WithRequestID(context.Background(), base).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.NotContains(t, entries[0].ContextMap(), "request_id")
}
