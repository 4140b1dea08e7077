// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationKey = "authorization"
	traceIDKey       = "x-trace-id"
)

// protectedMethods lists the methods that require a valid bearer token.
var protectedMethods = map[string]bool{
	FullMethodStoreSecret:    true,
	FullMethodRetrieveSecret: true,
}

func firstMetadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// withTraceID attaches a child logger tagged with the caller's x-trace-id
// (or a fresh one) and echoes the id in the response header.
func (h *Handler) withTraceID(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadataValue(ctx, traceIDKey)
	if traceID == "" {
		traceID = utils.NewTraceID()
	}

	ctx, _ = h.logger.WithTraceID(ctx, traceID)

	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))
	return handler(ctx, req)
}

func withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth resolves the bearer token of protected methods and stores the user
// in the context. Every rejection carries the same message.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	log := logger.FromContext(ctx)

	tokenString, err := utils.ParseBearerToken(firstMetadataValue(ctx, authorizationKey))
	if err != nil {
		log.Warn().Err(err).Send()
		return nil, status.Error(codes.Unauthenticated, service.ErrInvalidToken.Error())
	}

	user, err := h.services.AuthService.ResolveToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			log.Warn().Err(err).Msg("token rejected")
			return nil, status.Error(codes.Unauthenticated, service.ErrInvalidToken.Error())
		}
		return nil, serviceError(log, err, "error occurred during resolving token")
	}

	return handler(utils.WithUser(ctx, user), req)
}
