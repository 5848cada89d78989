package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the claim set carried by every issued bearer token: the
// custom "id" and "email" claims plus the registered iss/iat/exp set.
type TokenClaims struct {
	// UserID is the identity claim. Every ownership decision in the system
	// compares this value against Note.OwnerID.
	UserID int64 `json:"id"`

	// Email mirrors the account email at issuance time. Informational only.
	Email string `json:"email,omitempty"`

	jwt.RegisteredClaims
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or stored
// on the client side. UserID is a cached copy of the "id" claim.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the compact
	// string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"token"`

	// UserID is the identity extracted from the "id" claim.
	// Excluded from JSON serialization; it is an internal server-side cache.
	UserID int64 `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
