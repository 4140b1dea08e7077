// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenTypeBearer is the only token type issued by the server.
const TokenTypeBearer = "bearer"

// RegisterRequest is the body of a registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned after a successful registration or login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// StoreSecretRequest is the body of a request that encrypts and stores a message.
type StoreSecretRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// StoreSecretResponse describes a freshly stored secret. The data key is
// intentionally absent.
type StoreSecretResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	EncryptedMessage string `json:"encrypted_message"`
}

// RetrieveSecretResponse carries a decrypted message.
type RetrieveSecretRequest struct {
	Name string `json:"name"`
}

type RetrieveSecretResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// MessageResponse is a generic informational response.
type MessageResponse struct {
	Message string `json:"message"`
}
