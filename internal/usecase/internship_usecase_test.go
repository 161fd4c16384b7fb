package usecase_test

import (
	"testing"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInternship() domain.InternshipInput {
	return domain.InternshipInput{
		Title:              "Backend Intern",
		Description:        "Build APIs in Go",
		Skills:             []string{"Go", "SQL"},
		TargetedProgrammes: []string{string(domain.ProgrammeComputingScience)},
		Location:           "Kuala Lumpur",
		IsPaid:             true,
	}
}

func TestInternshipApprovalGate(t *testing.T) {
	e := newEnv(t)
	pending := e.registerCompany(t, "pending@acme.com")
	rejected := e.registerCompany(t, "rejected@acme.com")
	_, err := e.admin.RejectCompany(e.adminContext(t), rejected.Account.ID(), "")
	require.NoError(t, err)
	student := e.registerStudent(t, "ana@scm.edu", "SCM-1")

	for name, token := range map[string]string{"pending": pending.Token, "rejected": rejected.Token} {
		t.Run("Should forbid a "+name+" company", func(t *testing.T) {
			_, err := e.internships.Create(e.as(t, token), sampleInternship())
			assertKind(t, err, apperror.KindForbidden)
		})
	}

	t.Run("Should forbid students", func(t *testing.T) {
		_, err := e.internships.Create(e.as(t, student.Token), sampleInternship())
		assertKind(t, err, apperror.KindForbidden)
	})

	t.Run("Should allow the company once approved", func(t *testing.T) {
		_, err := e.admin.ApproveCompany(e.adminContext(t), pending.Account.ID())
		require.NoError(t, err)

		internship, err := e.internships.Create(e.as(t, pending.Token), sampleInternship())
		require.NoError(t, err)
		assert.Equal(t, domain.InternshipStatusOpen, internship.Status)
		assert.Equal(t, 1, internship.NumberOfPositions)
		require.NotNil(t, internship.Company)
		assert.Equal(t, pending.Account.ID(), internship.Company.ID)
	})
}

func TestInternshipLifecycle(t *testing.T) {
	e := newEnv(t)
	companyCtx, companyID := e.approvedCompany(t, "hr@acme.com")
	otherCtx, _ := e.approvedCompany(t, "hr@other.com")
	studentCtx := e.as(t, e.registerStudent(t, "ana@scm.edu", "SCM-1").Token)

	internship, err := e.internships.Create(companyCtx, sampleInternship())
	require.NoError(t, err)

	t.Run("Should validate required lists", func(t *testing.T) {
		in := sampleInternship()
		in.Skills = nil
		in.TargetedProgrammes = []string{"Bachelor of Magic"}
		_, err := e.internships.Create(companyCtx, in)
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should let only the owner update", func(t *testing.T) {
		in := sampleInternship()
		in.Title = "Platform Intern"
		in.NumberOfPositions = 3

		_, err := e.internships.Update(otherCtx, internship.ID, in)
		assertKind(t, err, apperror.KindForbidden)

		updated, err := e.internships.Update(companyCtx, internship.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "Platform Intern", updated.Title)
		assert.Equal(t, 3, updated.NumberOfPositions)
	})

	t.Run("Should filter open internships by programme", func(t *testing.T) {
		list, err := e.internships.ListOpen(studentCtx, string(domain.ProgrammeComputingScience))
		require.NoError(t, err)
		assert.Equal(t, 1, list.Count)

		list, err = e.internships.ListOpen(studentCtx, string(domain.ProgrammeIndustrialDesign))
		require.NoError(t, err)
		assert.Equal(t, 0, list.Count)

		_, err = e.internships.ListOpen(studentCtx, "Bachelor of Magic")
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should hide closed internships from students but not the owner", func(t *testing.T) {
		e.tick(time.Hour)
		closed, err := e.internships.Close(companyCtx, internship.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InternshipStatusClosed, closed.Status)

		list, err := e.internships.ListOpen(studentCtx, "")
		require.NoError(t, err)
		assert.Equal(t, 0, list.Count)

		_, err = e.internships.Get(studentCtx, internship.ID)
		assertKind(t, err, apperror.KindNotFound)

		mine, err := e.internships.ListMine(companyCtx)
		require.NoError(t, err)
		require.Equal(t, 1, mine.Count)
		assert.Equal(t, companyID, mine.Internships[0].CompanyID)
	})

	t.Run("Should return not found for unknown ids", func(t *testing.T) {
		_, err := e.internships.Get(companyCtx, "missing")
		assertKind(t, err, apperror.KindNotFound)
		_, err = e.internships.Close(companyCtx, "missing")
		assertKind(t, err, apperror.KindNotFound)
	})
}
