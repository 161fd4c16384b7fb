package memory

import (
	"context"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
)

type studentRepo struct{ s *Store }

func (r *studentRepo) Create(ctx context.Context, st *domain.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.students {
		if existing.Email == st.Email {
			return &domain.DuplicateKeyError{Field: "email"}
		}
		if existing.StudentID == st.StudentID {
			return &domain.DuplicateKeyError{Field: "studentId"}
		}
	}
	r.s.students[st.ID] = cloneStudent(*st)
	return nil
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.students[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneStudent(st)
	return &out, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.find(func(st domain.Student) bool { return st.Email == email })
}

func (r *studentRepo) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	return r.find(func(st domain.Student) bool { return st.StudentID == studentID })
}

func (r *studentRepo) find(match func(domain.Student) bool) (*domain.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.students {
		if match(st) {
			out := cloneStudent(st)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.students)), nil
}

func cloneStudent(st domain.Student) domain.Student {
	st.Skills = cloneStrings(st.Skills)
	return st
}

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.companies {
		if existing.HREmail == c.HREmail {
			return &domain.DuplicateKeyError{Field: "hrEmail"}
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *companyRepo) GetByHREmail(ctx context.Context, email string) (*domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.companies {
		if c.HREmail == email {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *companyRepo) List(ctx context.Context, status domain.CompanyStatus) ([]domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	companies := []domain.Company{}
	for _, c := range r.s.companies {
		if status == "" || c.Status == status {
			companies = append(companies, c)
		}
	}
	sortNewestFirst(companies, func(c domain.Company) int64 { return c.CreatedAt.UnixNano() })
	return companies, nil
}

func (r *companyRepo) UpdateStatus(ctx context.Context, c *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.companies[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = c.Status
	stored.ApprovedAt = c.ApprovedAt
	stored.RejectedAt = c.RejectedAt
	stored.RejectionReason = c.RejectionReason
	stored.UpdatedAt = c.UpdatedAt
	r.s.companies[c.ID] = stored
	return nil
}

func (r *companyRepo) CountByStatus(ctx context.Context) (map[domain.CompanyStatus]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[domain.CompanyStatus]int64)
	for _, c := range r.s.companies {
		counts[c.Status]++
	}
	return counts, nil
}

type adminRepo struct{ s *Store }

func (r *adminRepo) Create(ctx context.Context, a *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if existing.Email == a.Email {
			return &domain.DuplicateKeyError{Field: "email"}
		}
	}
	stored := *a
	stored.Permissions = cloneStrings(a.Permissions)
	r.s.admins[a.ID] = stored
	return nil
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Permissions = cloneStrings(a.Permissions)
	return &a, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.admins {
		if a.Email == email {
			a.Permissions = cloneStrings(a.Permissions)
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *adminRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.LastLogin = &at
	a.UpdatedAt = at
	r.s.admins[id] = a
	return nil
}
