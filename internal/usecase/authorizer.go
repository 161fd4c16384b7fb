package usecase

import (
	"context"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgRoleForbidden    = "Access denied. Insufficient permissions."
	msgCompanyPending   = "Your company account is pending approval. Please wait for admin approval."
)

// RequireRole returns the caller's identity when its role is one of roles.
func RequireRole(ctx context.Context, roles ...domain.Role) (*domain.Identity, error) {
	id := domain.IdentityFrom(ctx)
	if id == nil {
		return nil, apperror.Unauthenticated(msgNotAuthenticated, nil)
	}
	for _, r := range roles {
		if id.Role == r {
			return id, nil
		}
	}
	return nil, apperror.Forbidden(msgRoleForbidden)
}

// RequireCompanyApproved passes only an Approved company. The status is the
// one loaded by the authenticator for this request.
func RequireCompanyApproved(ctx context.Context) (*domain.Company, error) {
	id, err := RequireRole(ctx, domain.RoleCompany)
	if err != nil {
		return nil, err
	}
	company := id.Account.Company
	if company == nil || !company.IsApproved() {
		return nil, apperror.Forbidden(msgCompanyPending)
	}
	return company, nil
}
