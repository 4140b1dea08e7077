// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-secret-vault/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client calls the vault service over an established connection using the
// JSON codec.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// WithToken returns a context that carries token as bearer authorization
// metadata for protected calls.
func WithToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest, opts ...grpc.CallOption) (*models.TokenResponse, error) {
	out := new(models.TokenResponse)
	if err := c.invoke(ctx, FullMethodRegister, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest, opts ...grpc.CallOption) (*models.TokenResponse, error) {
	out := new(models.TokenResponse)
	if err := c.invoke(ctx, FullMethodLogin, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StoreSecret(ctx context.Context, req *models.StoreSecretRequest, opts ...grpc.CallOption) (*models.StoreSecretResponse, error) {
	out := new(models.StoreSecretResponse)
	if err := c.invoke(ctx, FullMethodStoreSecret, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RetrieveSecret(ctx context.Context, req *models.RetrieveSecretRequest, opts ...grpc.CallOption) (*models.RetrieveSecretResponse, error) {
	out := new(models.RetrieveSecretResponse)
	if err := c.invoke(ctx, FullMethodRetrieveSecret, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.conn.Invoke(ctx, method, in, out, opts...)
}
