package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// Application status constants. The order below is the usual flow, but any
// transition is accepted.
const (
	ApplicationStatusApplied      ApplicationStatus = "Applied"
	ApplicationStatusUnderReview  ApplicationStatus = "Under Review"
	ApplicationStatusInterviewing ApplicationStatus = "Interviewing"
	ApplicationStatusOffered      ApplicationStatus = "Offered"
	ApplicationStatusRejected     ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusUnderReview, ApplicationStatusInterviewing,
		ApplicationStatusOffered, ApplicationStatusRejected:
		return true
	}
	return false
}

// StatusChange is one immutable entry of an application's history.
type StatusChange struct {
	Status    ApplicationStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
	Notes     string            `json:"notes"`
}

// Application represents a student's application to an internship
type Application struct {
	ID            string            `json:"id"`
	StudentID     string            `json:"studentAccountId"`
	InternshipID  string            `json:"internshipId"`
	Status        ApplicationStatus `json:"status"`
	CoverLetter   string            `json:"coverLetter"`
	ResumeURL     string            `json:"resumeUrl"`
	Notes         string            `json:"notes"`
	StatusHistory []StatusChange    `json:"statusHistory"`
	AppliedAt     time.Time         `json:"appliedAt"`
	ReviewedAt    *time.Time        `json:"reviewedAt"`
	RespondedAt   *time.Time        `json:"respondedAt"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`

	// Joined data for responses
	Student    *StudentSummary    `json:"student,omitempty"`
	Internship *InternshipSummary `json:"internship,omitempty"`
}

// NewApplication builds an Applied application with its first history entry.
func NewApplication(studentID, internshipID, coverLetter, resumeURL string, now time.Time) *Application {
	app := &Application{
		StudentID:    studentID,
		InternshipID: internshipID,
		CoverLetter:  coverLetter,
		ResumeURL:    resumeURL,
		AppliedAt:    now,
		CreatedAt:    now,
	}
	app.Transition(ApplicationStatusApplied, "", now)
	return app
}

// Transition overwrites the status and appends a history entry. ReviewedAt
// and RespondedAt are first-write-wins.
func (a *Application) Transition(status ApplicationStatus, notes string, now time.Time) StatusChange {
	change := StatusChange{Status: status, ChangedAt: now, Notes: notes}
	a.Status = status
	a.StatusHistory = append(a.StatusHistory, change)

	if status == ApplicationStatusUnderReview && a.ReviewedAt == nil {
		a.ReviewedAt = &now
	}
	if (status == ApplicationStatusOffered || status == ApplicationStatusRejected) && a.RespondedAt == nil {
		a.RespondedAt = &now
	}
	a.UpdatedAt = now
	return change
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create stores the application with its history and bumps the
	// internship's application count. A second application by the same
	// student for the same internship yields a *DuplicateKeyError.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Exists(ctx context.Context, studentID, internshipID string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListByInternship(ctx context.Context, internshipID string) ([]Application, error)
	// UpdateStatus persists the status fields and appends change to the history.
	UpdateStatus(ctx context.Context, app *Application, change StatusChange) error
	Count(ctx context.Context) (int64, error)
}

type ApplyInput struct {
	CoverLetter string `json:"coverLetter" validate:"max=2000"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,max=2048"`
}

type StatusUpdateInput struct {
	Status string `json:"status" validate:"required,application_status"`
	Notes  string `json:"notes" validate:"max=1000"`
}

type ApplicationList struct {
	Count        int           `json:"count"`
	Applications []Application `json:"applications"`
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Student operations
	Apply(ctx context.Context, internshipID string, in ApplyInput) (*Application, error)
	ListMine(ctx context.Context) (*ApplicationList, error)

	// Company operations
	ListForInternship(ctx context.Context, internshipID string) (*ApplicationList, error)
	UpdateStatus(ctx context.Context, applicationID string, in StatusUpdateInput) (*Application, error)

	Get(ctx context.Context, applicationID string) (*Application, error)
}
