package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const verificationPurpose = "email_verification"

var (
	// ErrTokenExpired reports a structurally valid token whose expiry has
	// passed.
	ErrTokenExpired = errors.New("verification token has expired")
	// ErrInvalidToken covers every other validation failure: malformed
	// signature, wrong purpose, tampering.
	ErrInvalidToken = errors.New("invalid verification token")
)

// VerificationClaims binds a user id to the email-verification purpose.
type VerificationClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
}

// VerificationCodec issues and validates signed, time-bounded email
// verification tokens. The signing secret is dedicated to this purpose and
// distinct from any session secret.
type VerificationCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewVerificationCodec creates a codec with the given secret and token
// lifetime.
func NewVerificationCodec(secret string, ttl time.Duration) *VerificationCodec {
	return &VerificationCodec{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given user id.
func (c *VerificationCodec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := VerificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  userID,
		Purpose: verificationPurpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse validates a token and returns the bound user id. Validity is
// entirely determined by the signature and expiry at call time.
func (c *VerificationCodec) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VerificationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*VerificationClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Purpose != verificationPurpose || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
