package memory

import (
	"context"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
)

type internshipRepo struct{ s *Store }

func (r *internshipRepo) Create(ctx context.Context, in *domain.Internship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.internships[in.ID]; ok {
		return &domain.DuplicateKeyError{Field: "id"}
	}
	if _, ok := r.s.companies[in.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	r.s.internships[in.ID] = cloneInternship(*in)
	return nil
}

func (r *internshipRepo) GetByID(ctx context.Context, id string) (*domain.Internship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in, ok := r.s.internships[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.s.joinInternship(in)
	return &out, nil
}

func (r *internshipRepo) Update(ctx context.Context, in *domain.Internship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.internships[in.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneInternship(*in)
	// owned by the store, not by the caller
	updated.CompanyID = stored.CompanyID
	updated.ApplicationCount = stored.ApplicationCount
	updated.CreatedAt = stored.CreatedAt
	updated.Company = nil
	r.s.internships[in.ID] = updated
	return nil
}

func (r *internshipRepo) List(ctx context.Context, f domain.InternshipFilter) ([]domain.Internship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	internships := []domain.Internship{}
	for _, in := range r.s.internships {
		if f.Status != "" && in.Status != f.Status {
			continue
		}
		if f.CompanyID != "" && in.CompanyID != f.CompanyID {
			continue
		}
		if f.Programme != "" && !in.Targets(f.Programme) {
			continue
		}
		internships = append(internships, r.s.joinInternship(in))
	}
	sortNewestFirst(internships, func(in domain.Internship) int64 { return in.CreatedAt.UnixNano() })
	return internships, nil
}

func (r *internshipRepo) CountByStatus(ctx context.Context) (map[domain.InternshipStatus]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[domain.InternshipStatus]int64)
	for _, in := range r.s.internships {
		counts[in.Status]++
	}
	return counts, nil
}

// joinInternship attaches the company projection. Caller holds the lock.
func (s *Store) joinInternship(in domain.Internship) domain.Internship {
	out := cloneInternship(in)
	if c, ok := s.companies[in.CompanyID]; ok {
		out.Company = c.Summary()
	}
	return out
}

func cloneInternship(in domain.Internship) domain.Internship {
	in.Skills = cloneStrings(in.Skills)
	if in.TargetedProgrammes != nil {
		ps := make([]domain.Programme, len(in.TargetedProgrammes))
		copy(ps, in.TargetedProgrammes)
		in.TargetedProgrammes = ps
	}
	return in
}
