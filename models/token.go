// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// Token is an access token issued by the Access Guard, together with the
// claims it was signed or verified with. None of its fields are serialised;
// clients only ever see [TokenResponse].
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact HS256 JWS sent as the bearer token.
	SignedString string `json:"-"`
	// Username mirrors the sub claim.
	Username string `json:"-"`
}

func (t *Token) String() string {
	return t.SignedString
}
