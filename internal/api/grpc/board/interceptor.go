package board

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oshokin/jeopardy/internal/logger"
)

// Metadata keys identifying the caller of an RPC.
const (
	// ActorHostKey carries the caller's hostname.
	ActorHostKey = "x-jeopardy-host"
	// ActorUserKey carries the caller's username.
	ActorUserKey = "x-jeopardy-user"
)

// LoggingInterceptor logs every unary call with its caller, status code and latency.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	log := logger.FromContext(base)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()

		callLog := log.With("method", info.FullMethod)
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if host := first(md.Get(ActorHostKey)); host != "" {
				callLog = callLog.With("host", host)
			}

			if user := first(md.Get(ActorUserKey)); user != "" {
				callLog = callLog.With("user", user)
			}
		}

		ctx = logger.ToContext(ctx, callLog)

		resp, err := handler(ctx, req)

		logger.InfoKV(ctx, "RPC handled", "code", status.Code(err).String(), "elapsed", time.Since(started))

		return resp, err
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
