package domain

import (
	"context"
	"time"
)

// Programme is one of the four degree programmes students can belong to.
type Programme string

const (
	ProgrammeComputingScience Programme = "Bachelor of Computing Science"
	ProgrammeIndustrialDesign Programme = "Bachelor of Arts in Industrial Design"
	ProgrammeCreativeDigital  Programme = "Bachelor of Arts (Hons.) in Creative Digital Media"
	ProgrammeMobileGameDev    Programme = "Bachelor of Mobile Game Development"
)

var Programmes = []Programme{
	ProgrammeComputingScience,
	ProgrammeIndustrialDesign,
	ProgrammeCreativeDigital,
	ProgrammeMobileGameDev,
}

func (p Programme) Valid() bool {
	for _, known := range Programmes {
		if p == known {
			return true
		}
	}
	return false
}

// Student is the account kind that browses and applies to internships.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	StudentID    string    `json:"studentId"`
	Programme    Programme `json:"programme"`
	Skills       []string  `json:"skills"`
	ResumeURL    string    `json:"resumeUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StudentSummary is the projection joined onto applications.
type StudentSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	StudentID string    `json:"studentId"`
	Programme Programme `json:"programme"`
	Skills    []string  `json:"skills"`
	ResumeURL string    `json:"resumeUrl"`
}

func (s *Student) Summary() *StudentSummary {
	return &StudentSummary{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		StudentID: s.StudentID,
		Programme: s.Programme,
		Skills:    s.Skills,
		ResumeURL: s.ResumeURL,
	}
}

// StudentRepository returns ErrNotFound for missing rows and a
// *DuplicateKeyError ("email" or "studentId") on unique violations.
type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*Student, error)
	Count(ctx context.Context) (int64, error)
}

type RegisterStudentInput struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	StudentID string   `json:"studentId" validate:"required,max=50"`
	Programme string   `json:"programme" validate:"required,programme"`
	Skills    []string `json:"skills" validate:"omitempty,dive,required,max=100"`
	ResumeURL string   `json:"resumeUrl" validate:"omitempty,max=2048"`
}

type RegisterCompanyInput struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	HREmail     string `json:"hrEmail" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Website     string `json:"website" validate:"omitempty,website"`
}

type LoginInput struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token   string
	Role    Role
	Account Account
}

type AuthUsecase interface {
	RegisterStudent(ctx context.Context, in RegisterStudentInput) (*AuthResult, error)
	RegisterCompany(ctx context.Context, in RegisterCompanyInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Authenticate resolves a bearer token to the account it was issued for.
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
