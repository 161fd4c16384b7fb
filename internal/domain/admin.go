package domain

import (
	"context"
	"time"
)

// Admin reviews company registrations.
type Admin struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Permissions  []string   `json:"permissions"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalStudents     int64             `json:"totalStudents"`
	CompaniesByStatus CompaniesByStatus `json:"companiesByStatus"`
	TotalInternships  int64             `json:"totalInternships"`
	OpenInternships   int64             `json:"openInternships"`
	TotalApplications int64             `json:"totalApplications"`
}

type CompaniesByStatus struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// CompanyList is the admin listing payload.
type CompanyList struct {
	Count     int       `json:"count"`
	Companies []Company `json:"companies"`
}

type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id string) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// AdminUsecase defines admin business logic
type AdminUsecase interface {
	ListPendingCompanies(ctx context.Context) (*CompanyList, error)
	ListCompanies(ctx context.Context, status string) (*CompanyList, error)
	ApproveCompany(ctx context.Context, companyID string) (*Company, error)
	RejectCompany(ctx context.Context, companyID string, reason string) (*Company, error)
	GetStats(ctx context.Context) (*AdminStats, error)
	// EnsureAdmin creates the admin account if the email is not yet registered.
	EnsureAdmin(ctx context.Context, name, email, password string) (*Admin, bool, error)
}
