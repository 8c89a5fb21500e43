package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MikhailRaia/shorturls/internal/metrics"
)

// RequestIDKey is the metadata key carrying the request id in both directions.
const RequestIDKey = "x-request-id"

// UnaryLoggingInterceptor logs each unary call, echoes or assigns a request id
// and converts handler panics into codes.Internal.
func UnaryLoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	start := time.Now()
	requestID := requestIDFromMetadata(ctx)

	// no transport stream in unit tests; the header is best effort
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, requestID))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("method", info.FullMethod).
				Str("request_id", requestID).
				Interface("panic", rec).
				Msg("Unhandled panic in gRPC handler")
			resp, err = nil, status.Error(codes.Internal, fmt.Sprint(rec))
		}

		code := status.Code(err)
		metrics.RecordGRPC(info.FullMethod, code.String())

		event := log.Info()
		if code == codes.Internal || code == codes.Unknown {
			event = log.Error().Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("request_id", requestID).
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("gRPC request processed")
	}()

	return handler(ctx, req)
}

func requestIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDKey); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}
