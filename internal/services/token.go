package services

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"trivia-coffee-backend/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded bearer token handed to guarded handlers.
// Permissions follows the identity provider's RBAC claim; Scope is the
// space-delimited OAuth form and is honored as well.
type Claims struct {
	Permissions []string `json:"permissions,omitempty"`
	Scope       string   `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Granted merges both permission claims.
func (c *Claims) Granted() []string {
	out := append([]string(nil), c.Permissions...)
	for _, s := range strings.Fields(c.Scope) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func (c *Claims) hasPermissionClaim() bool {
	return c.Permissions != nil || c.Scope != ""
}

type TokenConfig struct {
	Issuer   string
	Audience string
	// HS256Secret enables shared-secret tokens.
	HS256Secret string
	// RSAPublicKey is a PEM block or a path to one; enables RS256 tokens.
	RSAPublicKey string
}

type TokenService struct {
	issuer   string
	audience string
	secret   []byte
	rsaKey   *rsa.PublicKey
	now      func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	s := &TokenService{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
	if cfg.HS256Secret != "" {
		s.secret = []byte(cfg.HS256Secret)
	}
	if cfg.RSAPublicKey != "" {
		pemBytes := []byte(cfg.RSAPublicKey)
		if !strings.HasPrefix(strings.TrimSpace(cfg.RSAPublicKey), "-----BEGIN") {
			b, err := os.ReadFile(cfg.RSAPublicKey)
			if err != nil {
				return nil, fmt.Errorf("read rsa public key: %w", err)
			}
			pemBytes = b
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
		if err != nil {
			return nil, fmt.Errorf("parse rsa public key: %w", err)
		}
		s.rsaKey = key
	}
	return s, nil
}

var (
	errHeaderMissing    = apperr.Auth(http.StatusUnauthorized, "authorization_header_missing", "Authorization header is expected.")
	errNotBearer        = apperr.Auth(http.StatusUnauthorized, "invalid_header", `Authorization header must start with "Bearer".`)
	errTokenNotFound    = apperr.Auth(http.StatusUnauthorized, "invalid_header", "Token not found.")
	errNotBearerToken   = apperr.Auth(http.StatusUnauthorized, "invalid_header", "Authorization header must be bearer token.")
	errUnparseable      = apperr.Auth(http.StatusUnauthorized, "invalid_header", "Unable to parse authentication token.")
	errNoKey            = apperr.Auth(http.StatusUnauthorized, "invalid_header", "Unable to find the appropriate key.")
	errExpired          = apperr.Auth(http.StatusUnauthorized, "token_expired", "Token expired.")
	errBadClaims        = apperr.Auth(http.StatusUnauthorized, "invalid_claims", "Incorrect claims. Please, check the audience and issuer.")
	errNoPermissions    = apperr.Auth(http.StatusUnauthorized, "invalid_claims", "Permissions not included in JWT.")
	errPermissionDenied = apperr.Auth(http.StatusForbidden, "unauthorized", "Permission not found.")
)

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) == 0 {
		return "", errHeaderMissing
	}
	switch {
	case !strings.EqualFold(parts[0], "bearer"):
		return "", errNotBearer
	case len(parts) == 1:
		return "", errTokenNotFound
	case len(parts) > 2:
		return "", errNotBearerToken
	}
	return parts[1], nil
}

func (s *TokenService) keyFunc(t *jwt.Token) (interface{}, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodRSA:
		if s.rsaKey != nil {
			return s.rsaKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if s.secret != nil {
			return s.secret, nil
		}
	}
	return nil, errNoKey
}

func (s *TokenService) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}
	return opts
}

// Verify checks signature, expiry, issuer and audience and that the token
// carries a permission claim. Every failure is an *apperr.Error.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		switch {
		case errors.Is(err, errNoKey):
			return nil, errNoKey
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer),
			errors.Is(err, jwt.ErrTokenInvalidAudience),
			errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, errBadClaims
		default:
			return nil, errUnparseable
		}
	}
	if !claims.hasPermissionClaim() {
		return nil, errNoPermissions
	}
	return claims, nil
}

// Issue signs an HS256 token. Only available with a shared secret; used
// for local development and tests.
func (s *TokenService) Issue(subject string, permissions []string, ttl time.Duration) (string, error) {
	if s.secret == nil {
		return "", errors.New("token issuing requires AUTH_HS256_SECRET")
	}
	now := s.now()
	claims := Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.issuer != "" {
		claims.Issuer = s.issuer
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authorize is the scope gate: it allows when required is among granted.
func Authorize(granted []string, required string) error {
	if slices.Contains(granted, required) {
		return nil
	}
	return errPermissionDenied
}
