package domain_test

import (
	"testing"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func TestCompanyApproval(t *testing.T) {
	t.Run("Should approve a pending company", func(t *testing.T) {
		c := &domain.Company{Status: domain.CompanyStatusPending}
		require.NoError(t, c.Approve(t0))

		assert.Equal(t, domain.CompanyStatusApproved, c.Status)
		require.NotNil(t, c.ApprovedAt)
		assert.Equal(t, t0, *c.ApprovedAt)
		assert.Nil(t, c.RejectedAt)
		assert.Equal(t, "", c.RejectionReason)
	})

	t.Run("Should fail approving twice and keep approvedAt", func(t *testing.T) {
		c := &domain.Company{Status: domain.CompanyStatusPending}
		require.NoError(t, c.Approve(t0))

		err := c.Approve(t0.Add(time.Hour))
		assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
		assert.Equal(t, t0, *c.ApprovedAt)
	})

	t.Run("Should clear rejection fields when approving a rejected company", func(t *testing.T) {
		c := &domain.Company{Status: domain.CompanyStatusPending}
		c.Reject(t0, "incomplete profile")
		require.NoError(t, c.Approve(t0.Add(time.Hour)))

		assert.Nil(t, c.RejectedAt)
		assert.Equal(t, "", c.RejectionReason)
		assert.Equal(t, t0.Add(time.Hour), *c.ApprovedAt)
	})

	t.Run("Should reject an approved company", func(t *testing.T) {
		c := &domain.Company{Status: domain.CompanyStatusPending}
		require.NoError(t, c.Approve(t0))

		c.Reject(t0.Add(time.Hour), "fraud report")
		assert.Equal(t, domain.CompanyStatusRejected, c.Status)
		assert.Nil(t, c.ApprovedAt)
		require.NotNil(t, c.RejectedAt)
		assert.Equal(t, t0.Add(time.Hour), *c.RejectedAt)
		assert.Equal(t, "fraud report", c.RejectionReason)
	})

	t.Run("Should allow re-rejecting with an empty reason", func(t *testing.T) {
		c := &domain.Company{Status: domain.CompanyStatusPending}
		c.Reject(t0, "first")
		c.Reject(t0.Add(time.Minute), "")

		assert.Equal(t, "", c.RejectionReason)
		assert.Equal(t, t0.Add(time.Minute), *c.RejectedAt)
	})
}

func TestApplicationTransition(t *testing.T) {
	t.Run("Should start Applied with one history entry", func(t *testing.T) {
		app := domain.NewApplication("stu", "int", "hello", "", t0)

		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		require.Len(t, app.StatusHistory, 1)
		assert.Equal(t, domain.ApplicationStatusApplied, app.StatusHistory[0].Status)
		assert.Equal(t, t0, app.AppliedAt)
		assert.Nil(t, app.ReviewedAt)
		assert.Nil(t, app.RespondedAt)
	})

	t.Run("Should set reviewedAt only on the first Under Review", func(t *testing.T) {
		app := domain.NewApplication("stu", "int", "", "", t0)
		first := t0.Add(time.Hour)
		second := t0.Add(2 * time.Hour)

		app.Transition(domain.ApplicationStatusUnderReview, "looking", first)
		app.Transition(domain.ApplicationStatusUnderReview, "still looking", second)

		require.NotNil(t, app.ReviewedAt)
		assert.Equal(t, first, *app.ReviewedAt)
		assert.Len(t, app.StatusHistory, 3)
		assert.Equal(t, "still looking", app.StatusHistory[2].Notes)
	})

	t.Run("Should set respondedAt once across Offered and Rejected", func(t *testing.T) {
		app := domain.NewApplication("stu", "int", "", "", t0)
		offered := t0.Add(time.Hour)

		app.Transition(domain.ApplicationStatusOffered, "", offered)
		app.Transition(domain.ApplicationStatusRejected, "offer withdrawn", t0.Add(2*time.Hour))

		assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
		assert.Equal(t, offered, *app.RespondedAt)
		assert.Nil(t, app.ReviewedAt)
	})

	t.Run("Should accept out of order transitions", func(t *testing.T) {
		app := domain.NewApplication("stu", "int", "", "", t0)
		change := app.Transition(domain.ApplicationStatusOffered, "fast track", t0.Add(time.Minute))

		assert.Equal(t, domain.ApplicationStatusOffered, change.Status)
		assert.Equal(t, "fast track", change.Notes)
		assert.Equal(t, domain.ApplicationStatusOffered, app.Status)
	})
}

func TestInternshipAcceptingApplications(t *testing.T) {
	deadline := t0.Add(24 * time.Hour)
	i := &domain.Internship{Status: domain.InternshipStatusOpen, ApplicationDeadline: &deadline}

	assert.True(t, i.AcceptingApplications(t0))
	assert.False(t, i.AcceptingApplications(deadline.Add(time.Second)))

	i.Status = domain.InternshipStatusClosed
	assert.False(t, i.AcceptingApplications(t0))
}

func TestAccountUnion(t *testing.T) {
	s := domain.StudentAccount(&domain.Student{ID: "s1", Email: "a@x.com", PasswordHash: "h"})
	c := domain.CompanyAccount(&domain.Company{ID: "c1", HREmail: "hr@acme.com"})
	a := domain.AdminAccount(&domain.Admin{ID: "a1", Email: "admin@x.com"})

	assert.Equal(t, "s1", s.ID())
	assert.Equal(t, "hr@acme.com", c.LoginKey())
	assert.Equal(t, "h", s.PasswordHash())
	assert.Equal(t, domain.RoleAdmin, a.Role)
	assert.IsType(t, &domain.Company{}, c.Public())

	_, err := domain.ParseRole("superuser")
	assert.Error(t, err)
	r, err := domain.ParseRole("company")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCompany, r)
}
