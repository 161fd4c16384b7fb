package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStudent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	t.Run("Should store a hashed password and return a student token", func(t *testing.T) {
		res := e.registerStudent(t, " Ana@SCM.edu ", "SCM-1")
		assert.Equal(t, domain.RoleStudent, res.Role)
		assert.Equal(t, "ana@scm.edu", res.Account.Student.Email)
		assert.NotEqual(t, "secret1", res.Account.Student.PasswordHash)

		claims, err := e.tokens.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Account.ID(), claims.AccountID())
		assert.Equal(t, "student", claims.Role)
	})

	t.Run("Should name missing required fields", func(t *testing.T) {
		_, err := e.auth.RegisterStudent(ctx, domain.RegisterStudentInput{Name: "Ana", Password: "secret1"})
		assertKind(t, err, apperror.KindValidation)
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "studentId")
		assert.Contains(t, err.Error(), "programme")
	})

	t.Run("Should reject a programme outside the offered set", func(t *testing.T) {
		_, err := e.auth.RegisterStudent(ctx, domain.RegisterStudentInput{
			Name: "Bo", Email: "bo@scm.edu", Password: "secret1", StudentID: "SCM-9", Programme: "Bachelor of Magic",
		})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should reject a short password", func(t *testing.T) {
		_, err := e.auth.RegisterStudent(ctx, domain.RegisterStudentInput{
			Name: "Bo", Email: "bo@scm.edu", Password: "12345", StudentID: "SCM-9",
			Programme: string(domain.ProgrammeMobileGameDev),
		})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should report duplicate email and duplicate student id separately", func(t *testing.T) {
		_, err := e.auth.RegisterStudent(ctx, domain.RegisterStudentInput{
			Name: "Ana 2", Email: "ana@scm.edu", Password: "secret1", StudentID: "SCM-2",
			Programme: string(domain.ProgrammeComputingScience),
		})
		assertKind(t, err, apperror.KindDuplicateKey)
		assert.Equal(t, "Email already registered", err.Error())

		_, err = e.auth.RegisterStudent(ctx, domain.RegisterStudentInput{
			Name: "Cy", Email: "cy@scm.edu", Password: "secret1", StudentID: "SCM-1",
			Programme: string(domain.ProgrammeComputingScience),
		})
		assertKind(t, err, apperror.KindDuplicateKey)
		assert.Equal(t, "Student ID already registered", err.Error())

		n, err := e.repos.Students.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestRegisterCompany(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res := e.registerCompany(t, "hr@acme.com")
	assert.Equal(t, domain.RoleCompany, res.Role)
	assert.Equal(t, domain.CompanyStatusPending, res.Account.Company.Status)
	assert.Nil(t, res.Account.Company.ApprovedAt)

	_, err := e.auth.RegisterCompany(ctx, domain.RegisterCompanyInput{CompanyName: "Other", HREmail: "HR@acme.com", Password: "secret1"})
	assertKind(t, err, apperror.KindDuplicateKey)

	_, err = e.auth.RegisterCompany(ctx, domain.RegisterCompanyInput{CompanyName: "Bad", HREmail: "bad@acme.com", Password: "secret1", Website: "not a url"})
	assertKind(t, err, apperror.KindValidation)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerStudent(t, "ana@scm.edu", "SCM-1")
	e.registerCompany(t, "hr@acme.com")
	_, created, err := e.admin.EnsureAdmin(ctx, "Root", "admin@scm.edu", "adminpass")
	require.NoError(t, err)
	require.True(t, created)

	t.Run("Should resolve each account kind by its login email", func(t *testing.T) {
		for email, role := range map[string]domain.Role{
			"ana@scm.edu":   domain.RoleStudent,
			"hr@acme.com":   domain.RoleCompany,
			"admin@scm.edu": domain.RoleAdmin,
		} {
			pw := "secret1"
			if role == domain.RoleAdmin {
				pw = "adminpass"
			}
			res, err := e.auth.Login(ctx, domain.LoginInput{Email: email, Password: pw})
			require.NoError(t, err, email)
			assert.Equal(t, role, res.Role)

			claims, err := e.tokens.Verify(res.Token)
			require.NoError(t, err)
			assert.Equal(t, string(role), claims.Role)
		}
	})

	t.Run("Should record admin last login", func(t *testing.T) {
		res, err := e.auth.Login(ctx, domain.LoginInput{Email: "admin@scm.edu", Password: "adminpass"})
		require.NoError(t, err)
		require.NotNil(t, res.Account.Admin.LastLogin)

		stored, err := e.repos.Admins.GetByEmail(ctx, "admin@scm.edu")
		require.NoError(t, err)
		require.NotNil(t, stored.LastLogin)
		assert.True(t, stored.LastLogin.Equal(e.now))
	})

	t.Run("Should fail identically for unknown email and wrong password", func(t *testing.T) {
		_, errUnknown := e.auth.Login(ctx, domain.LoginInput{Email: "nobody@scm.edu", Password: "secret1"})
		_, errWrong := e.auth.Login(ctx, domain.LoginInput{Email: "ana@scm.edu", Password: "nope-nope"})
		assertKind(t, errUnknown, apperror.KindInvalidCredentials)
		assertKind(t, errWrong, apperror.KindInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		assert.Equal(t, apperror.InvalidCredentialsMessage, errWrong.Error())
	})

	t.Run("Should require both fields", func(t *testing.T) {
		_, err := e.auth.Login(ctx, domain.LoginInput{Email: "ana@scm.edu"})
		assertKind(t, err, apperror.KindValidation)
	})
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res := e.registerStudent(t, "ana@scm.edu", "SCM-1")

	t.Run("Should load the account named by the token", func(t *testing.T) {
		id, err := e.auth.Authenticate(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Account.ID(), id.AccountID)
		assert.Equal(t, domain.RoleStudent, id.Role)
		require.NotNil(t, id.Account.Student)
		assert.Equal(t, "ana@scm.edu", id.Account.Student.Email)
	})

	t.Run("Should treat a token for a missing account as unauthenticated", func(t *testing.T) {
		token, err := e.tokens.Issue("00000000-0000-0000-0000-000000000000", "company")
		require.NoError(t, err)
		_, err = e.auth.Authenticate(ctx, token)
		assertKind(t, err, apperror.KindUnauthenticated)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("Should drop a company whose account was removed", func(t *testing.T) {
		company := e.registerCompany(t, "hr@gone.com")
		_, err := e.auth.Authenticate(ctx, company.Token)
		require.NoError(t, err)

		e.companies.remove(company.Account.ID())

		_, errGone := e.auth.Authenticate(ctx, company.Token)
		assertKind(t, errGone, apperror.KindUnauthenticated)
		assert.ErrorIs(t, errGone, domain.ErrAccountNotFound)

		_, errTampered := e.auth.Authenticate(ctx, company.Token+"x")
		assert.Equal(t, errTampered.Error(), errGone.Error())
	})

	t.Run("Should forbid a company token on admin operations", func(t *testing.T) {
		company := e.registerCompany(t, "hr@acme.com")
		ctx := e.as(t, company.Token)

		_, err := usecase.RequireRole(ctx, domain.RoleAdmin)
		assertKind(t, err, apperror.KindForbidden)

		_, err = e.admin.ListPendingCompanies(ctx)
		assertKind(t, err, apperror.KindForbidden)
	})

	t.Run("Should reject expired and tampered tokens with the same message", func(t *testing.T) {
		e.tick(auth.DefaultTTL + time.Minute)
		_, errExpired := e.auth.Authenticate(ctx, res.Token)
		assertKind(t, errExpired, apperror.KindUnauthenticated)
		assert.ErrorIs(t, errExpired, auth.ErrExpiredToken)

		_, errTampered := e.auth.Authenticate(ctx, res.Token+"x")
		assertKind(t, errTampered, apperror.KindUnauthenticated)
		assert.Equal(t, errExpired.Error(), errTampered.Error())
	})
}
