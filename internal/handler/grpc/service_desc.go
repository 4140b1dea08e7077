// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-secret-vault/models"
	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "vault.v1.Vault"

// Full method names as they appear in grpc.UnaryServerInfo.FullMethod.
const (
	FullMethodRegister       = "/" + ServiceName + "/Register"
	FullMethodLogin          = "/" + ServiceName + "/Login"
	FullMethodStoreSecret    = "/" + ServiceName + "/StoreSecret"
	FullMethodRetrieveSecret = "/" + ServiceName + "/RetrieveSecret"
)

// VaultServer is the server API of the vault gRPC service.
type VaultServer interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	StoreSecret(ctx context.Context, req *models.StoreSecretRequest) (*models.StoreSecretResponse, error)
	RetrieveSecret(ctx context.Context, req *models.RetrieveSecretRequest) (*models.RetrieveSecretResponse, error)
}

// ServiceDesc describes the vault service for [grpc.Server.RegisterService].
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(FullMethodRegister, VaultServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(FullMethodLogin, VaultServer.Login)},
		{MethodName: "StoreSecret", Handler: unaryHandler(FullMethodStoreSecret, VaultServer.StoreSecret)},
		{MethodName: "RetrieveSecret", Handler: unaryHandler(FullMethodRetrieveSecret, VaultServer.RetrieveSecret)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vault/v1/vault.proto",
}

// unaryHandler adapts a typed VaultServer method to a grpc.MethodHandler,
// running it through the server's interceptor chain.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(VaultServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServer), ctx, req.(*Req))
		})
	}
}
