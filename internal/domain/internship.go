package domain

import (
	"context"
	"time"
)

type InternshipStatus string

const (
	InternshipStatusOpen   InternshipStatus = "Open"
	InternshipStatusClosed InternshipStatus = "Closed"
)

// Internship is posted by an Approved company.
type Internship struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Skills              []string         `json:"skills"`
	TargetedProgrammes  []Programme      `json:"targetedProgrammes"`
	CompanyID           string           `json:"companyId"`
	Company             *CompanySummary  `json:"company,omitempty"`
	Status              InternshipStatus `json:"status"`
	Location            string           `json:"location"`
	Duration            string           `json:"duration"`
	IsPaid              bool             `json:"isPaid"`
	Salary              string           `json:"salary"`
	StartDate           *time.Time       `json:"startDate"`
	ApplicationDeadline *time.Time       `json:"applicationDeadline"`
	NumberOfPositions   int              `json:"numberOfPositions"`
	ApplicationCount    int              `json:"applicationCount"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// AcceptingApplications is true while the internship is Open and its deadline has not passed.
func (i *Internship) AcceptingApplications(now time.Time) bool {
	if i.Status != InternshipStatusOpen {
		return false
	}
	if i.ApplicationDeadline != nil && i.ApplicationDeadline.Before(now) {
		return false
	}
	return true
}

func (i *Internship) Targets(p Programme) bool {
	for _, t := range i.TargetedProgrammes {
		if t == p {
			return true
		}
	}
	return false
}

// InternshipSummary is the projection joined onto applications.
type InternshipSummary struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Skills      []string         `json:"skills"`
	Status      InternshipStatus `json:"status"`
	Company     *CompanySummary  `json:"company,omitempty"`
}

func (i *Internship) Summary() *InternshipSummary {
	return &InternshipSummary{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Skills:      i.Skills,
		Status:      i.Status,
		Company:     i.Company,
	}
}

// InternshipFilter narrows List; zero values match everything.
type InternshipFilter struct {
	Status    InternshipStatus
	CompanyID string
	Programme Programme
}

type InternshipRepository interface {
	Create(ctx context.Context, internship *Internship) error
	GetByID(ctx context.Context, id string) (*Internship, error)
	Update(ctx context.Context, internship *Internship) error
	// List returns internships newest-first.
	List(ctx context.Context, filter InternshipFilter) ([]Internship, error)
	CountByStatus(ctx context.Context) (map[InternshipStatus]int64, error)
}

type InternshipInput struct {
	Title               string     `json:"title" validate:"required,max=200"`
	Description         string     `json:"description" validate:"required,max=5000"`
	Skills              []string   `json:"skills" validate:"required,min=1,dive,required,max=100"`
	TargetedProgrammes  []string   `json:"targetedProgrammes" validate:"required,min=1,dive,programme"`
	Location            string     `json:"location" validate:"max=200"`
	Duration            string     `json:"duration" validate:"max=100"`
	IsPaid              bool       `json:"isPaid"`
	Salary              string     `json:"salary" validate:"max=100"`
	StartDate           *time.Time `json:"startDate"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	NumberOfPositions   int        `json:"numberOfPositions" validate:"omitempty,min=1"`
}

type InternshipList struct {
	Count       int          `json:"count"`
	Internships []Internship `json:"internships"`
}

type InternshipUsecase interface {
	Create(ctx context.Context, in InternshipInput) (*Internship, error)
	Update(ctx context.Context, id string, in InternshipInput) (*Internship, error)
	Close(ctx context.Context, id string) (*Internship, error)
	ListOpen(ctx context.Context, programme string) (*InternshipList, error)
	ListMine(ctx context.Context) (*InternshipList, error)
	Get(ctx context.Context, id string) (*Internship, error)
}
