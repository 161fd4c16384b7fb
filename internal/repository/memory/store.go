// Package memory holds in-process repositories backed by one mutex-guarded
// store. Uniqueness is checked under the lock, so concurrent registrations
// behave like the unique indexes of the postgres schema.
package memory

import (
	"sort"
	"sync"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
)

type Store struct {
	mu           sync.RWMutex
	students     map[string]domain.Student
	companies    map[string]domain.Company
	admins       map[string]domain.Admin
	internships  map[string]domain.Internship
	applications map[string]domain.Application
}

func NewStore() *Store {
	return &Store{
		students:     make(map[string]domain.Student),
		companies:    make(map[string]domain.Company),
		admins:       make(map[string]domain.Admin),
		internships:  make(map[string]domain.Internship),
		applications: make(map[string]domain.Application),
	}
}

// Repositories bundles every repository over one store.
type Repositories struct {
	Students     domain.StudentRepository
	Companies    domain.CompanyRepository
	Admins       domain.AdminRepository
	Internships  domain.InternshipRepository
	Applications domain.ApplicationRepository
}

func (s *Store) Repositories() Repositories {
	return Repositories{
		Students:     &studentRepo{s},
		Companies:    &companyRepo{s},
		Admins:       &adminRepo{s},
		Internships:  &internshipRepo{s},
		Applications: &applicationRepo{s},
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func sortNewestFirst[T any](items []T, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}
