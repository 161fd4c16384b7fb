package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const msgAlreadyApplied = "You have already applied to this internship"

type applicationUsecase struct {
	applications domain.ApplicationRepository
	internships  domain.InternshipRepository
	validate     *validator.Validate
	now          Clock
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applications domain.ApplicationRepository,
	internships domain.InternshipRepository,
	v *validator.Validate,
	now Clock,
) domain.ApplicationUsecase {
	if now == nil {
		now = systemClock
	}
	return &applicationUsecase{applications: applications, internships: internships, validate: v, now: now}
}

// Apply submits the calling student's application. The resume defaults to
// the one on the student's profile.
func (u *applicationUsecase) Apply(ctx context.Context, internshipID string, in domain.ApplyInput) (*domain.Application, error) {
	caller, err := RequireRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	student := caller.Account.Student

	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	in.ResumeURL = strings.TrimSpace(in.ResumeURL)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	internship, err := u.internships.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Internship not found")
		}
		return nil, apperror.Internal("failed to load internship", err)
	}

	now := u.now()
	if !internship.AcceptingApplications(now) {
		return nil, apperror.Validation("This internship is no longer accepting applications")
	}

	exists, err := u.applications.Exists(ctx, student.ID, internship.ID)
	if err != nil {
		return nil, apperror.Internal("failed to check existing application", err)
	}
	if exists {
		return nil, apperror.Duplicate(msgAlreadyApplied)
	}

	resume := in.ResumeURL
	if resume == "" {
		resume = student.ResumeURL
	}
	app := domain.NewApplication(student.ID, internship.ID, in.CoverLetter, resume, now)
	app.ID = uuid.NewString()

	if err := u.applications.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, apperror.Duplicate(msgAlreadyApplied)
		}
		return nil, apperror.Internal("failed to create application", err)
	}

	app.Student = student.Summary()
	app.Internship = internship.Summary()
	return app, nil
}

func (u *applicationUsecase) ListMine(ctx context.Context) (*domain.ApplicationList, error) {
	caller, err := RequireRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	apps, err := u.applications.ListByStudent(ctx, caller.AccountID)
	if err != nil {
		return nil, apperror.Internal("failed to list applications", err)
	}
	return &domain.ApplicationList{Count: len(apps), Applications: apps}, nil
}

func (u *applicationUsecase) ListForInternship(ctx context.Context, internshipID string) (*domain.ApplicationList, error) {
	company, err := RequireCompanyApproved(ctx)
	if err != nil {
		return nil, err
	}

	internship, err := u.internships.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Internship not found")
		}
		return nil, apperror.Internal("failed to load internship", err)
	}
	if internship.CompanyID != company.ID {
		return nil, apperror.Forbidden("You can only view applications for your own internships")
	}

	apps, err := u.applications.ListByInternship(ctx, internship.ID)
	if err != nil {
		return nil, apperror.Internal("failed to list applications", err)
	}
	return &domain.ApplicationList{Count: len(apps), Applications: apps}, nil
}

// UpdateStatus moves the application to any of the five statuses and records
// the change in its history.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, applicationID string, in domain.StatusUpdateInput) (*domain.Application, error) {
	company, err := RequireCompanyApproved(ctx)
	if err != nil {
		return nil, err
	}
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	app, err := u.load(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Internship == nil || app.Internship.Company == nil || app.Internship.Company.ID != company.ID {
		return nil, apperror.Forbidden("You can only update applications for your own internships")
	}

	change := app.Transition(domain.ApplicationStatus(in.Status), in.Notes, u.now())
	if in.Notes != "" {
		app.Notes = in.Notes
	}
	if err := u.applications.UpdateStatus(ctx, app, change); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal("failed to update application", err)
	}
	return app, nil
}

// Get is allowed for the applying student and the owning company.
func (u *applicationUsecase) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	caller, err := RequireRole(ctx, domain.RoleStudent, domain.RoleCompany)
	if err != nil {
		return nil, err
	}
	app, err := u.load(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case domain.RoleStudent:
		if app.StudentID != caller.AccountID {
			return nil, apperror.Forbidden("You can only view your own applications")
		}
	case domain.RoleCompany:
		if app.Internship == nil || app.Internship.Company == nil || app.Internship.Company.ID != caller.AccountID {
			return nil, apperror.Forbidden("You can only view applications for your own internships")
		}
	}
	return app, nil
}

func (u *applicationUsecase) load(ctx context.Context, id string) (*domain.Application, error) {
	app, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal("failed to load application", err)
	}
	return app, nil
}
