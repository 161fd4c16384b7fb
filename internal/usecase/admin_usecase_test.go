package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCompanyReview(t *testing.T) {
	e := newEnv(t)
	adminCtx := e.adminContext(t)

	first := e.registerCompany(t, "first@acme.com")
	e.tick(time.Minute)
	second := e.registerCompany(t, "second@acme.com")

	t.Run("Should list pending companies newest first", func(t *testing.T) {
		list, err := e.admin.ListPendingCompanies(adminCtx)
		require.NoError(t, err)
		require.Equal(t, 2, list.Count)
		assert.Equal(t, second.Account.ID(), list.Companies[0].ID)
		assert.Equal(t, first.Account.ID(), list.Companies[1].ID)
	})

	t.Run("Should approve once and refuse a second approval", func(t *testing.T) {
		e.tick(time.Minute)
		approvedAt := e.now
		company, err := e.admin.ApproveCompany(adminCtx, first.Account.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.CompanyStatusApproved, company.Status)
		require.NotNil(t, company.ApprovedAt)

		e.tick(time.Minute)
		_, err = e.admin.ApproveCompany(adminCtx, first.Account.ID())
		assertKind(t, err, apperror.KindAlreadyApproved)

		stored, err := e.repos.Companies.GetByID(context.Background(), first.Account.ID())
		require.NoError(t, err)
		assert.True(t, stored.ApprovedAt.Equal(approvedAt))
	})

	t.Run("Should reject from any state and clear approval", func(t *testing.T) {
		company, err := e.admin.RejectCompany(adminCtx, first.Account.ID(), "incomplete documents")
		require.NoError(t, err)
		assert.Equal(t, domain.CompanyStatusRejected, company.Status)
		assert.Nil(t, company.ApprovedAt)
		assert.Equal(t, "incomplete documents", company.RejectionReason)

		_, err = e.admin.ApproveCompany(adminCtx, first.Account.ID())
		require.NoError(t, err)
	})

	t.Run("Should return not found for unknown companies", func(t *testing.T) {
		_, err := e.admin.ApproveCompany(adminCtx, "missing")
		assertKind(t, err, apperror.KindNotFound)
		_, err = e.admin.RejectCompany(adminCtx, "missing", "")
		assertKind(t, err, apperror.KindNotFound)
	})

	t.Run("Should filter by status and validate the filter", func(t *testing.T) {
		list, err := e.admin.ListCompanies(adminCtx, "Approved")
		require.NoError(t, err)
		assert.Equal(t, 1, list.Count)

		all, err := e.admin.ListCompanies(adminCtx, "")
		require.NoError(t, err)
		assert.Equal(t, 2, all.Count)

		_, err = e.admin.ListCompanies(adminCtx, "Sleeping")
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should refuse non-admin callers", func(t *testing.T) {
		companyCtx := e.as(t, second.Token)
		_, err := e.admin.ApproveCompany(companyCtx, second.Account.ID())
		assertKind(t, err, apperror.KindForbidden)

		_, err = e.admin.ListPendingCompanies(context.Background())
		assertKind(t, err, apperror.KindUnauthenticated)
	})
}

func TestAdminStats(t *testing.T) {
	e := newEnv(t)
	companyCtx, _ := e.approvedCompany(t, "hr@acme.com")
	e.registerCompany(t, "pending@acme.com")
	student := e.registerStudent(t, "ana@scm.edu", "SCM-1")

	internship, err := e.internships.Create(companyCtx, sampleInternship())
	require.NoError(t, err)
	_, err = e.applications.Apply(e.as(t, student.Token), internship.ID, domain.ApplyInput{})
	require.NoError(t, err)

	stats, err := e.admin.GetStats(e.adminContext(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(1), stats.CompaniesByStatus.Pending)
	assert.Equal(t, int64(1), stats.CompaniesByStatus.Approved)
	assert.Equal(t, int64(1), stats.TotalInternships)
	assert.Equal(t, int64(1), stats.OpenInternships)
	assert.Equal(t, int64(1), stats.TotalApplications)
}

func TestEnsureAdmin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	admin, created, err := e.admin.EnsureAdmin(ctx, "", "Admin@SCM.edu", "adminpass")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "admin@scm.edu", admin.Email)
	assert.Equal(t, "Administrator", admin.Name)
	assert.NotEmpty(t, admin.Permissions)

	again, created, err := e.admin.EnsureAdmin(ctx, "Other", "admin@scm.edu", "different")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)

	_, _, err = e.admin.EnsureAdmin(ctx, "x", "short@scm.edu", "123")
	assertKind(t, err, apperror.KindValidation)
}
