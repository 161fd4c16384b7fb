package usecase

import (
	"context"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/auth"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// PasswordHasher is satisfied by *security.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	// Burn spends the same time as Verify without a real hash.
	Burn(password string)
}

// TokenService is satisfied by *auth.TokenService.
type TokenService interface {
	Issue(accountID, role string) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// LoginGuard is satisfied by *security.LoginTracker.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, requestID string) (bool, error)
	ClearAttempts(ctx context.Context, email string) error
}

// Clock returns the current time; tests pin it.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func validate(v *validator.Validate, in any) error {
	if err := v.Struct(in); err != nil {
		return apperror.Validation(validation.Message(err))
	}
	return nil
}
