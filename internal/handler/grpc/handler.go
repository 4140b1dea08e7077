// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
	"github.com/MKhiriev/go-secret-vault/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

var _ VaultServer = (*Handler)(nil)

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// RegisterService attaches the vault service to s.
func (h *Handler) RegisterService(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, h)
}

// ServerOptions returns the interceptor chain the vault service expects:
// trace id, access log, then bearer-token authentication.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, withLogging, h.auth),
	}
}

func (h *Handler) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	user, err := h.services.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, serviceError(log, err, "user registration failed")
	}

	return h.issueToken(ctx, user)
}

func (h *Handler) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	user, ok, err := h.services.AuthService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, serviceError(log, err, "unexpected error occurred during user login")
	}
	if !ok {
		log.Info().Msg("no user was found/wrong password")
		return nil, status.Error(codes.Unauthenticated, errInvalidCredentials.Error())
	}

	return h.issueToken(ctx, user)
}

func (h *Handler) StoreSecret(ctx context.Context, req *models.StoreSecretRequest) (*models.StoreSecretResponse, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	secret, err := h.services.SecretService.Store(ctx, req.Name, req.Message, &user)
	if err != nil {
		return nil, serviceError(logger.FromContext(ctx), err, "storing secret failed")
	}

	return &models.StoreSecretResponse{
		ID:               secret.ID,
		Name:             secret.Name,
		EncryptedMessage: secret.Ciphertext,
	}, nil
}

func (h *Handler) RetrieveSecret(ctx context.Context, req *models.RetrieveSecretRequest) (*models.RetrieveSecretResponse, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	message, err := h.services.SecretService.Retrieve(ctx, req.Name, &user)
	if err != nil {
		return nil, serviceError(logger.FromContext(ctx), err, "retrieving secret failed")
	}

	return &models.RetrieveSecretResponse{Name: req.Name, Message: message}, nil
}

// requireUser returns the user the auth interceptor attached to ctx.
func requireUser(ctx context.Context) (models.User, error) {
	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		logger.FromContext(ctx).Error().Msg("no authenticated user in request context")
		return models.User{}, status.Error(codes.Unauthenticated, service.ErrInvalidToken.Error())
	}
	return user, nil
}

func (h *Handler) issueToken(ctx context.Context, user models.User) (*models.TokenResponse, error) {
	token, err := h.services.AuthService.IssueToken(ctx, user, 0)
	if err != nil {
		return nil, serviceError(logger.FromContext(ctx), err, "creation of token failed")
	}

	_ = grpc.SetHeader(ctx, metadata.Pairs(authorizationKey, "Bearer "+token.SignedString))
	return &models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   models.TokenTypeBearer,
	}, nil
}
