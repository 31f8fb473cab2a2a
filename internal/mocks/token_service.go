package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// GenerateTokenFn allows test cases to mock the GenerateToken behavior
	GenerateTokenFn func(ctx context.Context, sessionID uuid.UUID) (string, error)

	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default response values
	Token string
	Err   error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// GenerateToken implements the auth.TokenService interface
func (m *MockTokenService) GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, sessionID)
	}
	return m.Token, m.Err
}

// ValidateToken implements the auth.TokenService interface
func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, errors.New("mock token service: ValidateToken not configured")
}

// NewMockTokenServiceForSession accepts exactly token as a credential for
// sessionID and rejects everything else as invalid.
func NewMockTokenServiceForSession(token string, sessionID uuid.UUID) *MockTokenService {
	return &MockTokenService{
		Token: token,
		ValidateTokenFn: func(_ context.Context, got string) (*auth.Claims, error) {
			if got != token {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{SessionID: sessionID}, nil
		},
	}
}
