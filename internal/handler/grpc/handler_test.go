// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1 << 20

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:    "grpc-test-sign-key-that-is-at-least-32-bytes",
			TokenIssuer:     "go-secret-vault",
			TokenTTLMinutes: 30,
			BcryptCost:      bcrypt.MinCost,
			Cipher:          "chacha20-poly1305",
			Version:         "1.0.0",
		},
		Storage: config.Storage{DB: config.DB{DSN: "memory"}},
	}
}

// startVault serves a memory-backed vault over bufconn and returns a client
// connected to it.
func startVault(t *testing.T) *Client {
	t.Helper()

	ctx := context.Background()
	cfg := testConfig()

	storages, err := store.NewStorages(ctx, cfg.Storage, logger.Nop())
	require.NoError(t, err)
	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	h := NewHandler(services, logger.Nop())
	srv := grpc.NewServer(h.ServerOptions()...)
	h.RegisterService(srv)

	lis := bufconn.Listen(bufSize)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func register(t *testing.T, c *Client, username string) string {
	t.Helper()
	resp, err := c.Register(context.Background(), &models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.TokenTypeBearer, resp.TokenType)
	return resp.AccessToken
}

func TestVault_RegisterLoginStoreRetrieve(t *testing.T) {
	c := startVault(t)
	ctx := context.Background()

	register(t, c, "alice")

	var header metadata.MD
	login, err := c.Login(ctx, &models.LoginRequest{Username: "alice", Password: "pw-alice"}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer " + login.AccessToken}, header.Get(authorizationKey))
	assert.Len(t, header.Get(traceIDKey), 1)

	authed := WithToken(ctx, login.AccessToken)

	stored, err := c.StoreSecret(authed, &models.StoreSecretRequest{Name: "note1", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "note1", stored.Name)
	assert.NotEmpty(t, stored.EncryptedMessage)
	assert.NotEqual(t, "hello", stored.EncryptedMessage)

	got, err := c.RetrieveSecret(authed, &models.RetrieveSecretRequest{Name: "note1"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Message)

	_, err = c.RetrieveSecret(authed, &models.RetrieveSecretRequest{Name: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.StoreSecret(authed, &models.StoreSecretRequest{Name: "note1", Message: "again"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestVault_LoginRejectionsLookAlike(t *testing.T) {
	c := startVault(t)
	ctx := context.Background()
	register(t, c, "alice")

	_, wrongPassword := c.Login(ctx, &models.LoginRequest{Username: "alice", Password: "nope"})
	_, unknownUser := c.Login(ctx, &models.LoginRequest{Username: "bob", Password: "pw-bob"})

	assert.Equal(t, codes.Unauthenticated, status.Code(wrongPassword))
	assert.Equal(t, status.Convert(wrongPassword).Message(), status.Convert(unknownUser).Message())
}

func TestVault_DuplicateRegistration(t *testing.T) {
	c := startVault(t)
	register(t, c, "alice")

	_, err := c.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "pw",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestVault_InvalidRegistration(t *testing.T) {
	c := startVault(t)

	_, err := c.Register(context.Background(), &models.RegisterRequest{
		Username: "al", Email: "not-an-email", Password: "pw",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestVault_ProtectedMethodsRequireToken(t *testing.T) {
	c := startVault(t)
	ctx := context.Background()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", ctx},
		{"garbage token", WithToken(ctx, "not.a.jwt")},
		{"wrong scheme", metadata.AppendToOutgoingContext(ctx, authorizationKey, "Basic abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.StoreSecret(tt.ctx, &models.StoreSecretRequest{Name: "n", Message: "m"})
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, service.ErrInvalidToken.Error(), status.Convert(err).Message())

			_, err = c.RetrieveSecret(tt.ctx, &models.RetrieveSecretRequest{Name: "n"})
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}
}

// TestVault_SecretsScopedToOwner checks that another user's secret is
// refused while its owner can still read it.
func TestVault_SecretsScopedToOwner(t *testing.T) {
	c := startVault(t)
	ctx := context.Background()

	alice := WithToken(ctx, register(t, c, "alice"))
	bob := WithToken(ctx, register(t, c, "bob"))

	_, err := c.StoreSecret(alice, &models.StoreSecretRequest{Name: "diary", Message: "dear diary"})
	require.NoError(t, err)

	_, err = c.RetrieveSecret(bob, &models.RetrieveSecretRequest{Name: "diary"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	got, err := c.RetrieveSecret(alice, &models.RetrieveSecretRequest{Name: "diary"})
	require.NoError(t, err)
	assert.Equal(t, "dear diary", got.Message)
}

func TestVault_TraceIDEchoed(t *testing.T) {
	c := startVault(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), traceIDKey, "trace-123")

	var header metadata.MD
	_, err := c.Register(ctx, &models.RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "pw",
	}, grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{"trace-123"}, header.Get(traceIDKey))
}

// unreachableSecrets fails the test if a handler delegates to it.
type unreachableSecrets struct{ t *testing.T }

func (u unreachableSecrets) Store(context.Context, string, string, *models.User) (models.Secret, error) {
	u.t.Fatal("Store reached without an authenticated user")
	return models.Secret{}, nil
}

func (u unreachableSecrets) Retrieve(context.Context, string, *models.User) (string, error) {
	u.t.Fatal("Retrieve reached without an authenticated user")
	return "", nil
}

func (u unreachableSecrets) List(context.Context) ([]models.Secret, error) {
	u.t.Fatal("List is not served over gRPC")
	return nil, nil
}

func TestHandler_SecretMethodsWithoutUser(t *testing.T) {
	h := NewHandler(&service.Services{SecretService: unreachableSecrets{t}}, logger.Nop())
	ctx := context.Background()

	_, err := h.StoreSecret(ctx, &models.StoreSecretRequest{Name: "n", Message: "m"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.RetrieveSecret(ctx, &models.RetrieveSecretRequest{Name: "n"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
