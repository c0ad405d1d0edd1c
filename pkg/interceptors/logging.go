package interceptors

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

// NewLoggingInterceptor creates a new logging interceptor with payload size tracking
func NewLoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			requestSize := payloadSize(req.Any())

			logger.InfoContext(ctx, "RPC started", appendLoggerFields(ctx,
				"procedure", req.Spec().Procedure,
				"peer", req.Peer().Addr,
				"request_size_bytes", requestSize,
			)...)

			resp, err := next(ctx, req)

			duration := time.Since(start)

			responseSize := 0
			// On error resp may wrap a nil *connect.Response.
			if err == nil && resp != nil {
				responseSize = payloadSize(resp.Any())
			}

			if err != nil {
				logger.ErrorContext(ctx, "RPC failed", appendLoggerFields(ctx,
					"procedure", req.Spec().Procedure,
					"code", connect.CodeOf(err).String(),
					"duration", duration.String(),
					"duration_ms", duration.Milliseconds(),
					"request_size_bytes", requestSize,
					"response_size_bytes", responseSize,
					"error", err,
				)...)
			} else {
				logger.InfoContext(ctx, "RPC completed", appendLoggerFields(ctx,
					"procedure", req.Spec().Procedure,
					"duration", duration.String(),
					"duration_ms", duration.Milliseconds(),
					"request_size_bytes", requestSize,
					"response_size_bytes", responseSize,
				)...)
			}

			return resp, err
		}
	}
}

// payloadSize reports the encoded JSON size of msg, the same encoding the
// API puts on the wire.
func payloadSize(msg any) int {
	if msg == nil {
		return 0
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return 0
	}
	return len(data)
}

func appendLoggerFields(ctx context.Context, base ...any) []any {
	if requestID, ok := RequestIDFromContext(ctx); ok && requestID != "" {
		base = append(base, "request_id", requestID)
	}
	if sessionID, ok := SessionIDFromContext(ctx); ok && sessionID != "" {
		base = append(base, "session_id", sessionID)
	}
	return base
}
