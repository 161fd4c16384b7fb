package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type internshipUsecase struct {
	internships domain.InternshipRepository
	validate    *validator.Validate
	now         Clock
}

func NewInternshipUsecase(internships domain.InternshipRepository, v *validator.Validate, now Clock) domain.InternshipUsecase {
	if now == nil {
		now = systemClock
	}
	return &internshipUsecase{internships: internships, validate: v, now: now}
}

func (u *internshipUsecase) Create(ctx context.Context, in domain.InternshipInput) (*domain.Internship, error) {
	company, err := RequireCompanyApproved(ctx)
	if err != nil {
		return nil, err
	}
	in = trimInternshipInput(in)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	now := u.now()
	internship := &domain.Internship{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Status:    domain.InternshipStatusOpen,
		CreatedAt: now,
	}
	applyInternshipInput(internship, in, now)

	if err := u.internships.Create(ctx, internship); err != nil {
		return nil, apperror.Internal("failed to create internship", err)
	}
	internship.Company = company.Summary()
	return internship, nil
}

func (u *internshipUsecase) Update(ctx context.Context, id string, in domain.InternshipInput) (*domain.Internship, error) {
	internship, err := u.owned(ctx, id)
	if err != nil {
		return nil, err
	}
	in = trimInternshipInput(in)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	applyInternshipInput(internship, in, u.now())
	if err := u.internships.Update(ctx, internship); err != nil {
		return nil, apperror.Internal("failed to update internship", err)
	}
	return internship, nil
}

func (u *internshipUsecase) Close(ctx context.Context, id string) (*domain.Internship, error) {
	internship, err := u.owned(ctx, id)
	if err != nil {
		return nil, err
	}

	internship.Status = domain.InternshipStatusClosed
	internship.UpdatedAt = u.now()
	if err := u.internships.Update(ctx, internship); err != nil {
		return nil, apperror.Internal("failed to close internship", err)
	}
	return internship, nil
}

// ListOpen returns open internships, optionally only those targeting programme.
func (u *internshipUsecase) ListOpen(ctx context.Context, programme string) (*domain.InternshipList, error) {
	if _, err := RequireRole(ctx, domain.RoleStudent, domain.RoleCompany, domain.RoleAdmin); err != nil {
		return nil, err
	}
	p := domain.Programme(programme)
	if programme != "" && !p.Valid() {
		return nil, apperror.Validation("programme must be one of the offered programmes")
	}

	internships, err := u.internships.List(ctx, domain.InternshipFilter{Status: domain.InternshipStatusOpen, Programme: p})
	if err != nil {
		return nil, apperror.Internal("failed to list internships", err)
	}
	return &domain.InternshipList{Count: len(internships), Internships: internships}, nil
}

func (u *internshipUsecase) ListMine(ctx context.Context) (*domain.InternshipList, error) {
	id, err := RequireRole(ctx, domain.RoleCompany)
	if err != nil {
		return nil, err
	}
	internships, err := u.internships.List(ctx, domain.InternshipFilter{CompanyID: id.AccountID})
	if err != nil {
		return nil, apperror.Internal("failed to list internships", err)
	}
	return &domain.InternshipList{Count: len(internships), Internships: internships}, nil
}

// Get hides closed internships from students.
func (u *internshipUsecase) Get(ctx context.Context, id string) (*domain.Internship, error) {
	caller, err := RequireRole(ctx, domain.RoleStudent, domain.RoleCompany, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	internship, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleStudent && internship.Status != domain.InternshipStatusOpen {
		return nil, apperror.NotFound("Internship not found")
	}
	return internship, nil
}

// owned loads id and checks it belongs to the calling approved company.
func (u *internshipUsecase) owned(ctx context.Context, id string) (*domain.Internship, error) {
	company, err := RequireCompanyApproved(ctx)
	if err != nil {
		return nil, err
	}
	internship, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if internship.CompanyID != company.ID {
		return nil, apperror.Forbidden("You can only manage your own internships")
	}
	return internship, nil
}

func (u *internshipUsecase) load(ctx context.Context, id string) (*domain.Internship, error) {
	internship, err := u.internships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Internship not found")
		}
		return nil, apperror.Internal("failed to load internship", err)
	}
	return internship, nil
}

func trimInternshipInput(in domain.InternshipInput) domain.InternshipInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Salary = strings.TrimSpace(in.Salary)
	return in
}

func applyInternshipInput(internship *domain.Internship, in domain.InternshipInput, now time.Time) {
	internship.Title = in.Title
	internship.Description = in.Description
	internship.Skills = normalizeList(in.Skills)
	internship.TargetedProgrammes = make([]domain.Programme, 0, len(in.TargetedProgrammes))
	for _, p := range in.TargetedProgrammes {
		internship.TargetedProgrammes = append(internship.TargetedProgrammes, domain.Programme(p))
	}
	internship.Location = in.Location
	internship.Duration = in.Duration
	internship.IsPaid = in.IsPaid
	internship.Salary = in.Salary
	internship.StartDate = in.StartDate
	internship.ApplicationDeadline = in.ApplicationDeadline
	internship.NumberOfPositions = in.NumberOfPositions
	if internship.NumberOfPositions == 0 {
		internship.NumberOfPositions = 1
	}
	internship.UpdatedAt = now
}
