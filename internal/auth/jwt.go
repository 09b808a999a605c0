package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errors surfaced by credential and token checks. The credential error is
// deliberately the same for unknown user and wrong password.
var (
	ErrCredenciales = errors.New("Credenciales inválidas")
	ErrTokenExpired = errors.New("Token expirado")
	ErrTokenInvalid = errors.New("Token inválido")
)

// Claims is the JWT payload minted at login.
type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	LoginTime string `json:"loginTime"`
	jwt.RegisteredClaims
}

// Authority checks the single configured admin identity and signs session
// tokens. Tokens are held by the client only; there is no server-side
// session table, so a token cannot be revoked before it expires. That is a
// deliberate trade-off: the validity window is the whole security boundary.
type Authority struct {
	username string
	password string
	key      []byte
	ttl      time.Duration
}

// NewAuthority builds an Authority for the configured admin credentials.
func NewAuthority(username, password, signingKey string, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authority{username: username, password: password, key: []byte(signingKey), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (a *Authority) TTL() time.Duration { return a.ttl }

// Login validates the credential pair by exact match and issues a signed
// token valid for the default lifetime.
func (a *Authority) Login(username, password string) (string, error) {
	return a.LoginWithTTL(username, password, a.ttl)
}

// LoginWithTTL is Login with a caller-specified validity window.
func (a *Authority) LoginWithTTL(username, password string, ttl time.Duration) (string, error) {
	if username != a.username || password != a.password {
		return "", ErrCredenciales
	}
	now := time.Now()
	claims := Claims{
		Username:  username,
		Role:      "admin",
		LoginTime: now.UTC().Format(time.RFC3339),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// Parse verifies signature and expiry and returns the decoded claims.
// Expired tokens are reported as ErrTokenExpired; every other failure
// collapses into ErrTokenInvalid.
func (a *Authority) Parse(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return *claims, nil
}
