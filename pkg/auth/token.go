package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the validity window of issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMissingSecret    = errors.New("token signing secret is required")
)

// validRoles mirrors domain.Role; auth sits below domain and keeps its own copy.
var validRoles = map[string]bool{
	"student": true,
	"company": true,
	"admin":   true,
}

// TokenConfig is loaded once at startup and never mutated.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Claims is the signed identity assertion.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AccountID is the subject the token was issued for.
func (c *Claims) AccountID() string {
	return c.Subject
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenService{
		secret: secret,
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    now,
	}, nil
}

// Issue signs an HS256 token binding accountID to role.
func (s *TokenService) Issue(accountID, role string) (string, error) {
	if accountID == "" || !validRoles[role] {
		return "", fmt.Errorf("issue token: invalid subject %q or role %q", accountID, role)
	}
	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the claims of a valid token. Expired tokens yield
// ErrExpiredToken; anything else that fails yields ErrInvalidSignature.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !token.Valid || claims.Subject == "" || !validRoles[claims.Role] {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// TTL reports the configured validity window.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
