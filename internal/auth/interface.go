package auth

import "guidesync/internal/domain/models"

// JWTVerifier validates access tokens minted by the external auth service.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims, or
	// domain.ErrUnauthorized on any failure.
	VerifyToken(tokenString string) (*models.AuthClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
