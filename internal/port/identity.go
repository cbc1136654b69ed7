package port

import (
	"context"

	"senti/internal/domain"
)

// Identity delegates account management to an external identity backend.
// senti never stores credentials itself.
type Identity interface {
	// SignUp creates an account and returns a fresh session.
	SignUp(ctx context.Context, email, password string) (domain.Session, error)

	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (domain.Session, error)

	// Verify resolves a session token to the user it belongs to.
	Verify(ctx context.Context, token string) (domain.User, error)
}
