package memory

import (
	"context"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
)

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applications {
		if existing.StudentID == app.StudentID && existing.InternshipID == app.InternshipID {
			return &domain.DuplicateKeyError{Field: "internshipId"}
		}
	}
	in, ok := r.s.internships[app.InternshipID]
	if !ok {
		return domain.ErrNotFound
	}
	in.ApplicationCount++
	r.s.internships[in.ID] = in
	r.s.applications[app.ID] = cloneApplication(*app)
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.s.joinApplication(app)
	return &out, nil
}

func (r *applicationRepo) Exists(ctx context.Context, studentID, internshipID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, app := range r.s.applications {
		if app.StudentID == studentID && app.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	return r.list(func(app domain.Application) bool { return app.StudentID == studentID }), nil
}

func (r *applicationRepo) ListByInternship(ctx context.Context, internshipID string) ([]domain.Application, error) {
	return r.list(func(app domain.Application) bool { return app.InternshipID == internshipID }), nil
}

func (r *applicationRepo) list(match func(domain.Application) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	applications := []domain.Application{}
	for _, app := range r.s.applications {
		if match(app) {
			applications = append(applications, r.s.joinApplication(app))
		}
	}
	sortNewestFirst(applications, func(app domain.Application) int64 { return app.AppliedAt.UnixNano() })
	return applications
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, app *domain.Application, change domain.StatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.applications[app.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = app.Status
	stored.Notes = app.Notes
	stored.ReviewedAt = app.ReviewedAt
	stored.RespondedAt = app.RespondedAt
	stored.UpdatedAt = app.UpdatedAt
	history := make([]domain.StatusChange, len(stored.StatusHistory), len(stored.StatusHistory)+1)
	copy(history, stored.StatusHistory)
	stored.StatusHistory = append(history, change)
	r.s.applications[app.ID] = stored
	return nil
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.applications)), nil
}

// joinApplication attaches student and internship projections. Caller holds the lock.
func (s *Store) joinApplication(app domain.Application) domain.Application {
	out := cloneApplication(app)
	if st, ok := s.students[app.StudentID]; ok {
		student := cloneStudent(st)
		out.Student = student.Summary()
	}
	if in, ok := s.internships[app.InternshipID]; ok {
		joined := s.joinInternship(in)
		out.Internship = joined.Summary()
	}
	return out
}

func cloneApplication(app domain.Application) domain.Application {
	history := make([]domain.StatusChange, len(app.StatusHistory))
	copy(history, app.StatusHistory)
	app.StatusHistory = history
	app.Student = nil
	app.Internship = nil
	return app
}
