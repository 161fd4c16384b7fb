package usecase

import (
	"context"
	"errors"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"
	"github.com/google/uuid"
)

// DefaultAdminPermissions are granted to seeded admins.
var DefaultAdminPermissions = []string{"approve_companies", "reject_companies", "view_stats"}

// AdminDeps wires the admin usecase.
type AdminDeps struct {
	Students     domain.StudentRepository
	Companies    domain.CompanyRepository
	Admins       domain.AdminRepository
	Internships  domain.InternshipRepository
	Applications domain.ApplicationRepository
	Hasher       PasswordHasher
	Audit        *security.SecurityLogger
	Now          Clock
}

type adminUsecase struct {
	students     domain.StudentRepository
	companies    domain.CompanyRepository
	admins       domain.AdminRepository
	internships  domain.InternshipRepository
	applications domain.ApplicationRepository
	hasher       PasswordHasher
	audit        *security.SecurityLogger
	now          Clock
}

func NewAdminUsecase(d AdminDeps) domain.AdminUsecase {
	u := &adminUsecase{
		students:     d.Students,
		companies:    d.Companies,
		admins:       d.Admins,
		internships:  d.Internships,
		applications: d.Applications,
		hasher:       d.Hasher,
		audit:        d.Audit,
		now:          d.Now,
	}
	if u.audit == nil {
		u.audit = security.NopSecurityLogger()
	}
	if u.now == nil {
		u.now = systemClock
	}
	return u
}

func (u *adminUsecase) ListPendingCompanies(ctx context.Context) (*domain.CompanyList, error) {
	return u.list(ctx, domain.CompanyStatusPending)
}

// ListCompanies lists every company when status is empty.
func (u *adminUsecase) ListCompanies(ctx context.Context, status string) (*domain.CompanyList, error) {
	s := domain.CompanyStatus(status)
	if status != "" && !s.Valid() {
		return nil, apperror.Validation("status must be one of Pending, Approved, Rejected")
	}
	return u.list(ctx, s)
}

func (u *adminUsecase) list(ctx context.Context, status domain.CompanyStatus) (*domain.CompanyList, error) {
	if _, err := RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	companies, err := u.companies.List(ctx, status)
	if err != nil {
		return nil, apperror.Internal("failed to list companies", err)
	}
	return &domain.CompanyList{Count: len(companies), Companies: companies}, nil
}

func (u *adminUsecase) ApproveCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	admin, err := RequireRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	company, err := u.getCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.Approve(u.now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyApproved) {
			return nil, apperror.AlreadyApproved("Company is already approved")
		}
		return nil, apperror.Internal("failed to approve company", err)
	}
	if err := u.saveStatus(ctx, company); err != nil {
		return nil, err
	}

	u.audit.LogCompanyDecision(ctx, security.EventCompanyApproved, admin.AccountID, company.ID)
	return company, nil
}

func (u *adminUsecase) RejectCompany(ctx context.Context, companyID string, reason string) (*domain.Company, error) {
	admin, err := RequireRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	company, err := u.getCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	company.Reject(u.now(), reason)
	if err := u.saveStatus(ctx, company); err != nil {
		return nil, err
	}

	u.audit.LogCompanyDecision(ctx, security.EventCompanyRejected, admin.AccountID, company.ID)
	return company, nil
}

func (u *adminUsecase) getCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Company not found")
		}
		return nil, apperror.Internal("failed to load company", err)
	}
	return company, nil
}

func (u *adminUsecase) saveStatus(ctx context.Context, company *domain.Company) error {
	if err := u.companies.UpdateStatus(ctx, company); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Company not found")
		}
		return apperror.Internal("failed to update company", err)
	}
	return nil
}

// GetStats returns dashboard statistics
func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if _, err := RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}

	stats := &domain.AdminStats{}
	var err error

	if stats.TotalStudents, err = u.students.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count students", err)
	}

	companies, err := u.companies.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to count companies", err)
	}
	stats.CompaniesByStatus = domain.CompaniesByStatus{
		Pending:  companies[domain.CompanyStatusPending],
		Approved: companies[domain.CompanyStatusApproved],
		Rejected: companies[domain.CompanyStatusRejected],
	}

	internships, err := u.internships.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to count internships", err)
	}
	for _, n := range internships {
		stats.TotalInternships += n
	}
	stats.OpenInternships = internships[domain.InternshipStatusOpen]

	if stats.TotalApplications, err = u.applications.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count applications", err)
	}
	return stats, nil
}

// EnsureAdmin is used by the seeding command and at startup. It reports
// whether a new admin was created.
func (u *adminUsecase) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.Admin, bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, apperror.Validation("Please provide all required fields: email, password")
	}
	if len(password) < 6 {
		return nil, false, apperror.Validation("password must be at least 6 characters long")
	}

	existing, err := u.admins.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, apperror.Internal("failed to look up admin", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, false, apperror.Internal("failed to hash password", err)
	}
	if name == "" {
		name = "Administrator"
	}

	now := u.now()
	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Permissions:  append([]string(nil), DefaultAdminPermissions...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			existing, getErr := u.admins.GetByEmail(ctx, email)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, apperror.Internal("failed to create admin", err)
	}
	return admin, true, nil
}
