package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leandrawisnu/noteshare/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for the given user.
//
// The token carries the custom identity claims ("id", "email") together with
// the standard Issuer, IssuedAt and ExpiresAt claims. The "id" claim is the
// value every ownership check compares against Note.OwnerID.
//
// All parameters are required. Returns an error if issuer or signKey is
// empty, tokenDuration is zero, or signing fails.
func GenerateJWTToken(issuer string, user models.User, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.TokenClaims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: user.UserID}, nil
}

// ValidateAndParseJWTToken is the authoritative, server-side identity check.
//
// Validation includes signature verification with signKey, the issuer claim
// check against tokenIssuer, and the expiration check. The caller identity is
// taken from the "id" claim.
//
// This function must be used for every mutating request. The advisory
// counterpart for display purposes is [DecodeDisplayIdentity]; the two are
// deliberately separate and must never be merged.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.UserID == 0 {
		return models.Token{}, errors.New("token has no identity claim")
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: claims.UserID}, nil
}

// ParseBearerToken extracts the token part from an "Authorization" header
// value of the form "<scheme> <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// DecodeDisplayIdentity recovers the "id" claim from a compact JWT without
// verifying the signature.
//
// It exists solely so the client can decide whether to show delete controls
// without a server round-trip. It carries no security weight: the server
// re-derives the identity through [ValidateAndParseJWTToken] on every
// mutation. A missing, malformed, or undecodable token yields 0 — the caller
// must treat 0 as "not the owner", never as an error.
func DecodeDisplayIdentity(tokenString string) int64 {
	parts := strings.Split(tokenString, ".")
	if len(parts) < 2 || parts[1] == "" {
		return 0
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// tolerate padded segments produced by non-canonical encoders
		payload, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return 0
		}
	}

	var claims struct {
		ID int64 `json:"id"`
	}
	if err = json.Unmarshal(payload, &claims); err != nil {
		return 0
	}

	return claims.ID
}
