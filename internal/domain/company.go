package domain

import (
	"context"
	"errors"
	"time"
)

type CompanyStatus string

const (
	CompanyStatusPending  CompanyStatus = "Pending"
	CompanyStatusApproved CompanyStatus = "Approved"
	CompanyStatusRejected CompanyStatus = "Rejected"
)

func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyStatusPending, CompanyStatusApproved, CompanyStatusRejected:
		return true
	}
	return false
}

// ErrAlreadyApproved is returned when approving a company that is already Approved.
var ErrAlreadyApproved = errors.New("company is already approved")

// Company signs in with its HR email and must be Approved before it can
// manage internships.
type Company struct {
	ID              string        `json:"id"`
	CompanyName     string        `json:"companyName"`
	HREmail         string        `json:"hrEmail"`
	PasswordHash    string        `json:"-"`
	Description     string        `json:"description"`
	Website         string        `json:"website"`
	Status          CompanyStatus `json:"status"`
	ApprovedAt      *time.Time    `json:"approvedAt"`
	RejectedAt      *time.Time    `json:"rejectedAt"`
	RejectionReason string        `json:"rejectionReason"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (c *Company) IsApproved() bool {
	return c.Status == CompanyStatusApproved
}

// Approve moves the company to Approved. Approving twice is an error and
// leaves ApprovedAt untouched.
func (c *Company) Approve(now time.Time) error {
	if c.Status == CompanyStatusApproved {
		return ErrAlreadyApproved
	}
	c.Status = CompanyStatusApproved
	c.ApprovedAt = &now
	c.RejectedAt = nil
	c.RejectionReason = ""
	c.UpdatedAt = now
	return nil
}

// Reject is allowed from any state, including Approved.
func (c *Company) Reject(now time.Time, reason string) {
	c.Status = CompanyStatusRejected
	c.RejectedAt = &now
	c.RejectionReason = reason
	c.ApprovedAt = nil
	c.UpdatedAt = now
}

// CompanySummary is the projection joined onto internships.
type CompanySummary struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

func (c *Company) Summary() *CompanySummary {
	return &CompanySummary{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		Website:     c.Website,
		Description: c.Description,
	}
}

// CompanyRepository returns ErrNotFound for missing rows and a
// *DuplicateKeyError ("hrEmail") on unique violations.
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	GetByHREmail(ctx context.Context, email string) (*Company, error)
	// List returns companies newest-first; an empty status matches all.
	List(ctx context.Context, status CompanyStatus) ([]Company, error)
	// UpdateStatus persists Status, ApprovedAt, RejectedAt, RejectionReason and UpdatedAt.
	UpdateStatus(ctx context.Context, company *Company) error
	CountByStatus(ctx context.Context) (map[CompanyStatus]int64, error)
}
