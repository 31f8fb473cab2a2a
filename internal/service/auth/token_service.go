package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService issues and checks session tokens.
type TokenService interface {
	// GenerateToken creates a signed token for the given session.
	GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error)

	// ValidateToken checks the token signature and lifetime and returns its
	// claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a session token.
type Claims struct {
	SessionID uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
