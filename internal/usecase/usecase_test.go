package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/repository/memory"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/auth"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories
type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) Create(ctx context.Context, s *domain.Student) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockStudentRepo) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLoginGuard struct {
	mock.Mock
}

func (m *MockLoginGuard) IsBlocked(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoginGuard) RecordFailedAttempt(ctx context.Context, email, requestID string) (bool, error) {
	args := m.Called(ctx, email, requestID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoginGuard) ClearAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

// removableCompanies hides companies removed after registration, the way a
// deleted row disappears from the store.
type removableCompanies struct {
	domain.CompanyRepository
	mu      sync.Mutex
	removed map[string]bool
}

func (r *removableCompanies) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removed == nil {
		r.removed = make(map[string]bool)
	}
	r.removed[id] = true
}

func (r *removableCompanies) gone(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removed[id]
}

func (r *removableCompanies) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if r.gone(id) {
		return nil, domain.ErrNotFound
	}
	return r.CompanyRepository.GetByID(ctx, id)
}

func (r *removableCompanies) GetByHREmail(ctx context.Context, email string) (*domain.Company, error) {
	c, err := r.CompanyRepository.GetByHREmail(ctx, email)
	if err == nil && r.gone(c.ID) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

// env wires every usecase over one memory store with a pinned clock.
type env struct {
	repos        memory.Repositories
	companies    *removableCompanies
	now          time.Time
	tokens       *auth.TokenService
	hasher       *security.PasswordHasher
	auth         domain.AuthUsecase
	admin        domain.AdminUsecase
	internships  domain.InternshipUsecase
	applications domain.ApplicationUsecase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		repos:  memory.NewStore().Repositories(),
		now:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		hasher: security.NewPasswordHasher(bcrypt.MinCost),
	}
	e.companies = &removableCompanies{CompanyRepository: e.repos.Companies}
	clock := func() time.Time { return e.now }

	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret"), Issuer: "test", Now: clock})
	require.NoError(t, err)
	e.tokens = tokens

	v := validation.New()
	e.auth = usecase.NewAuthUsecase(usecase.AuthDeps{
		Students:  e.repos.Students,
		Companies: e.companies,
		Admins:    e.repos.Admins,
		Hasher:    e.hasher,
		Tokens:    tokens,
		Validate:  v,
		Now:       clock,
	})
	e.admin = usecase.NewAdminUsecase(usecase.AdminDeps{
		Students:     e.repos.Students,
		Companies:    e.companies,
		Admins:       e.repos.Admins,
		Internships:  e.repos.Internships,
		Applications: e.repos.Applications,
		Hasher:       e.hasher,
		Now:          clock,
	})
	e.internships = usecase.NewInternshipUsecase(e.repos.Internships, v, clock)
	e.applications = usecase.NewApplicationUsecase(e.repos.Applications, e.repos.Internships, v, clock)
	return e
}

func (e *env) tick(d time.Duration) { e.now = e.now.Add(d) }

// as authenticates token and returns a context carrying the identity.
func (e *env) as(t *testing.T, token string) context.Context {
	t.Helper()
	id, err := e.auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	return domain.WithIdentity(context.Background(), id)
}

func (e *env) registerStudent(t *testing.T, email, studentID string) *domain.AuthResult {
	t.Helper()
	res, err := e.auth.RegisterStudent(context.Background(), domain.RegisterStudentInput{
		Name:      "Student " + studentID,
		Email:     email,
		Password:  "secret1",
		StudentID: studentID,
		Programme: string(domain.ProgrammeComputingScience),
		Skills:    []string{"Go"},
		ResumeURL: "https://cv.example.com/" + studentID,
	})
	require.NoError(t, err)
	return res
}

func (e *env) registerCompany(t *testing.T, email string) *domain.AuthResult {
	t.Helper()
	res, err := e.auth.RegisterCompany(context.Background(), domain.RegisterCompanyInput{
		CompanyName: "Acme " + email,
		HREmail:     email,
		Password:    "secret1",
	})
	require.NoError(t, err)
	return res
}

func (e *env) adminContext(t *testing.T) context.Context {
	t.Helper()
	_, _, err := e.admin.EnsureAdmin(context.Background(), "Root", "admin@scm.edu", "adminpass")
	require.NoError(t, err)
	res, err := e.auth.Login(context.Background(), domain.LoginInput{Email: "admin@scm.edu", Password: "adminpass"})
	require.NoError(t, err)
	return e.as(t, res.Token)
}

// approvedCompany registers and approves a company and returns its context.
func (e *env) approvedCompany(t *testing.T, email string) (context.Context, string) {
	t.Helper()
	res := e.registerCompany(t, email)
	_, err := e.admin.ApproveCompany(e.adminContext(t), res.Account.ID())
	require.NoError(t, err)
	return e.as(t, res.Token), res.Account.ID()
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, kind, appErr.Kind, appErr.Message)
}

func TestLoginLockout(t *testing.T) {
	e := newEnv(t)
	e.registerStudent(t, "ana@scm.edu", "SCM-1")

	t.Run("Should reject a blocked email before checking the password", func(t *testing.T) {
		guard := new(MockLoginGuard)
		guard.On("IsBlocked", mock.Anything, "ana@scm.edu").Return(true, nil)

		uc := usecase.NewAuthUsecase(usecase.AuthDeps{
			Students: e.repos.Students, Companies: e.repos.Companies, Admins: e.repos.Admins,
			Hasher: e.hasher, Tokens: e.tokens, Guard: guard, Validate: validation.New(),
		})
		_, err := uc.Login(context.Background(), domain.LoginInput{Email: "ana@scm.edu", Password: "secret1"})
		assertKind(t, err, apperror.KindTooManyRequests)
		guard.AssertNotCalled(t, "RecordFailedAttempt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should count failures and clear on success", func(t *testing.T) {
		guard := new(MockLoginGuard)
		guard.On("IsBlocked", mock.Anything, mock.Anything).Return(false, nil)
		guard.On("RecordFailedAttempt", mock.Anything, "ana@scm.edu", mock.Anything).Return(false, nil).Once()
		guard.On("RecordFailedAttempt", mock.Anything, "ghost@scm.edu", mock.Anything).Return(false, nil).Once()
		guard.On("ClearAttempts", mock.Anything, "ana@scm.edu").Return(nil).Once()

		uc := usecase.NewAuthUsecase(usecase.AuthDeps{
			Students: e.repos.Students, Companies: e.repos.Companies, Admins: e.repos.Admins,
			Hasher: e.hasher, Tokens: e.tokens, Guard: guard, Validate: validation.New(),
		})
		_, err := uc.Login(context.Background(), domain.LoginInput{Email: "ana@scm.edu", Password: "wrong-pw"})
		assertKind(t, err, apperror.KindInvalidCredentials)
		_, err = uc.Login(context.Background(), domain.LoginInput{Email: "ghost@scm.edu", Password: "wrong-pw"})
		assertKind(t, err, apperror.KindInvalidCredentials)
		_, err = uc.Login(context.Background(), domain.LoginInput{Email: "ANA@scm.edu ", Password: "secret1"})
		require.NoError(t, err)

		guard.AssertExpectations(t)
	})
}

func TestRegisterStudentStoreErrors(t *testing.T) {
	ctx := context.Background()
	in := domain.RegisterStudentInput{
		Name: "Ana", Email: "ana@scm.edu", Password: "secret1", StudentID: "SCM-1",
		Programme: string(domain.ProgrammeIndustrialDesign),
	}

	t.Run("Should map a unique violation on insert to a duplicate error", func(t *testing.T) {
		repo := new(MockStudentRepo)
		repo.On("GetByEmail", ctx, "ana@scm.edu").Return(nil, domain.ErrNotFound)
		repo.On("GetByStudentID", ctx, "SCM-1").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Student")).Return(&domain.DuplicateKeyError{Field: "studentId"})

		uc := usecase.NewAuthUsecase(usecase.AuthDeps{
			Students: repo, Hasher: security.NewPasswordHasher(bcrypt.MinCost), Validate: validation.New(),
		})
		_, err := uc.RegisterStudent(ctx, in)
		assertKind(t, err, apperror.KindDuplicateKey)
		assert.Contains(t, err.Error(), "Student ID already registered")
	})

	t.Run("Should not write when the lookup fails", func(t *testing.T) {
		repo := new(MockStudentRepo)
		repo.On("GetByEmail", ctx, "ana@scm.edu").Return(nil, errors.New("connection reset"))

		uc := usecase.NewAuthUsecase(usecase.AuthDeps{
			Students: repo, Hasher: security.NewPasswordHasher(bcrypt.MinCost), Validate: validation.New(),
		})
		_, err := uc.RegisterStudent(ctx, in)
		assertKind(t, err, apperror.KindInternal)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
