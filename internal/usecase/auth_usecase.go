package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/auth"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/logger"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgEmailRegistered     = "Email already registered"
	msgStudentIDRegistered = "Student ID already registered"
	msgTokenInvalid        = "Invalid or expired token. Please log in again."
	msgLoginBlocked        = "Too many failed login attempts. Please try again later."
)

// AuthDeps wires the authenticator and account lifecycle.
type AuthDeps struct {
	Students  domain.StudentRepository
	Companies domain.CompanyRepository
	Admins    domain.AdminRepository
	Hasher    PasswordHasher
	Tokens    TokenService
	Guard     LoginGuard
	Audit     *security.SecurityLogger
	Validate  *validator.Validate
	Now       Clock
}

type authUsecase struct {
	students  domain.StudentRepository
	companies domain.CompanyRepository
	admins    domain.AdminRepository
	hasher    PasswordHasher
	tokens    TokenService
	guard     LoginGuard
	audit     *security.SecurityLogger
	validate  *validator.Validate
	now       Clock
}

func NewAuthUsecase(d AuthDeps) domain.AuthUsecase {
	u := &authUsecase{
		students:  d.Students,
		companies: d.Companies,
		admins:    d.Admins,
		hasher:    d.Hasher,
		tokens:    d.Tokens,
		guard:     d.Guard,
		audit:     d.Audit,
		validate:  d.Validate,
		now:       d.Now,
	}
	if u.guard == nil {
		u.guard = security.NewLoginTracker(nil, security.LoginTrackerConfig{}, nil)
	}
	if u.audit == nil {
		u.audit = security.NopSecurityLogger()
	}
	if u.now == nil {
		u.now = systemClock
	}
	return u
}

func (u *authUsecase) RegisterStudent(ctx context.Context, in domain.RegisterStudentInput) (*domain.AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	in.StudentID = strings.TrimSpace(in.StudentID)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	if _, err := u.students.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Duplicate(msgEmailRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal("failed to check email", err)
	}
	if _, err := u.students.GetByStudentID(ctx, in.StudentID); err == nil {
		return nil, apperror.Duplicate(msgStudentIDRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal("failed to check student id", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	now := u.now()
	student := &domain.Student{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		StudentID:    in.StudentID,
		Programme:    domain.Programme(in.Programme),
		Skills:       normalizeList(in.Skills),
		ResumeURL:    strings.TrimSpace(in.ResumeURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.students.Create(ctx, student); err != nil {
		return nil, duplicateOrInternal(err, "failed to create student")
	}

	return u.issue(domain.StudentAccount(student))
}

func (u *authUsecase) RegisterCompany(ctx context.Context, in domain.RegisterCompanyInput) (*domain.AuthResult, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.HREmail = domain.NormalizeEmail(in.HREmail)
	in.Website = strings.TrimSpace(in.Website)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	if _, err := u.companies.GetByHREmail(ctx, in.HREmail); err == nil {
		return nil, apperror.Duplicate(msgEmailRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal("failed to check email", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	now := u.now()
	company := &domain.Company{
		ID:           uuid.NewString(),
		CompanyName:  in.CompanyName,
		HREmail:      in.HREmail,
		PasswordHash: hash,
		Description:  strings.TrimSpace(in.Description),
		Website:      in.Website,
		Status:       domain.CompanyStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.companies.Create(ctx, company); err != nil {
		return nil, duplicateOrInternal(err, "failed to create company")
	}

	return u.issue(domain.CompanyAccount(company))
}

// Login probes students, then companies by HR email, then admins. The first
// account whose login key matches decides the outcome. Every failure looks
// the same to the caller.
func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperror.Validation("Please provide email and password")
	}
	requestID := domain.RequestIDFrom(ctx)

	blocked, err := u.guard.IsBlocked(ctx, email)
	if err != nil {
		logger.Log.Warn("login guard unavailable", "error", err)
	}
	if blocked {
		u.audit.LogLoginBlocked(ctx, email, in.IP, in.UserAgent, requestID)
		return nil, apperror.TooManyRequests(msgLoginBlocked)
	}

	account, err := u.findAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	if account == nil {
		u.hasher.Burn(in.Password)
		return nil, u.loginFailed(ctx, email, in, requestID, "no_account")
	}

	if err := u.hasher.Verify(in.Password, account.PasswordHash()); err != nil {
		if !errors.Is(err, security.ErrMismatchedPassword) {
			return nil, apperror.Internal("failed to verify password", err)
		}
		return nil, u.loginFailed(ctx, email, in, requestID, "password_mismatch")
	}

	if err := u.guard.ClearAttempts(ctx, email); err != nil {
		logger.Log.Warn("failed to clear login attempts", "error", err)
	}

	if account.Role == domain.RoleAdmin {
		now := u.now()
		if err := u.admins.UpdateLastLogin(ctx, account.Admin.ID, now); err != nil {
			return nil, apperror.Internal("failed to record last login", err)
		}
		account.Admin.LastLogin = &now
	}

	u.audit.LogLoginSuccess(ctx, account.ID(), string(account.Role), in.IP, requestID)
	return u.issue(*account)
}

func (u *authUsecase) loginFailed(ctx context.Context, email string, in domain.LoginInput, requestID, reason string) error {
	u.audit.LogLoginFailed(ctx, email, in.IP, in.UserAgent, requestID, reason)
	if _, err := u.guard.RecordFailedAttempt(ctx, email, requestID); err != nil {
		logger.Log.Warn("failed to record login attempt", "error", err)
	}
	return apperror.InvalidCredentials()
}

// findAccount returns nil, nil when no account uses email.
func (u *authUsecase) findAccount(ctx context.Context, email string) (*domain.Account, error) {
	for _, role := range domain.LoginOrder {
		var (
			account domain.Account
			err     error
		)
		switch role {
		case domain.RoleStudent:
			var s *domain.Student
			if s, err = u.students.GetByEmail(ctx, email); err == nil {
				account = domain.StudentAccount(s)
			}
		case domain.RoleCompany:
			var c *domain.Company
			if c, err = u.companies.GetByHREmail(ctx, email); err == nil {
				account = domain.CompanyAccount(c)
			}
		case domain.RoleAdmin:
			var a *domain.Admin
			if a, err = u.admins.GetByEmail(ctx, email); err == nil {
				account = domain.AdminAccount(a)
			}
		}
		if err == nil {
			return &account, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal("failed to look up account", err)
		}
	}
	return nil, nil
}

// Authenticate verifies the token and loads the account it names. An
// account deleted after issuance is treated like an expired token.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := u.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Unauthenticated(msgTokenInvalid, err)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, apperror.Unauthenticated(msgTokenInvalid, auth.ErrInvalidSignature)
	}

	var account domain.Account
	switch role {
	case domain.RoleStudent:
		var s *domain.Student
		if s, err = u.students.GetByID(ctx, claims.AccountID()); err == nil {
			account = domain.StudentAccount(s)
		}
	case domain.RoleCompany:
		var c *domain.Company
		if c, err = u.companies.GetByID(ctx, claims.AccountID()); err == nil {
			account = domain.CompanyAccount(c)
		}
	case domain.RoleAdmin:
		var a *domain.Admin
		if a, err = u.admins.GetByID(ctx, claims.AccountID()); err == nil {
			account = domain.AdminAccount(a)
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthenticated(msgTokenInvalid, domain.ErrAccountNotFound)
		}
		return nil, apperror.Internal("failed to load account", err)
	}

	return &domain.Identity{AccountID: account.ID(), Role: role, Account: account}, nil
}

func (u *authUsecase) issue(account domain.Account) (*domain.AuthResult, error) {
	token, err := u.tokens.Issue(account.ID(), string(account.Role))
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}
	return &domain.AuthResult{Token: token, Role: account.Role, Account: account}, nil
}

// duplicateOrInternal maps a store-level unique violation to the same
// message the pre-insert checks use.
func duplicateOrInternal(err error, details string) error {
	var dup *domain.DuplicateKeyError
	if errors.As(err, &dup) {
		if dup.Field == "studentId" {
			return apperror.Duplicate(msgStudentIDRegistered)
		}
		return apperror.Duplicate(msgEmailRegistered)
	}
	return apperror.Internal(details, err)
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
