package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-fs"

// CustomClaims defines the structure of the data stored inside the JWT.
// Channels lists the channels the bearer may read and write, empty means all.
type CustomClaims struct {
	ClientID string   `json:"client_id"`
	Channels []uint64 `json:"channels,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a client of the channel server.
func GenerateToken(secret []byte, clientID string, channels []uint64, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		ClientID: clientID,
		Channels: channels,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	// HS256 (HMAC with SHA256), the server shares the secret with token minting
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func ValidateToken(secret []byte, tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// CanAccess reports whether the claims allow access to a channel.
func (c *CustomClaims) CanAccess(channel uint64) bool {
	if len(c.Channels) == 0 {
		return true
	}
	for _, allowed := range c.Channels {
		if allowed == channel {
			return true
		}
	}
	return false
}
