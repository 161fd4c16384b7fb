// Package repository selects the storage backend named by STORAGE_DRIVER.
package repository

import (
	"context"
	"fmt"

	"github.com/Rayup0124/SCM-Career-Bridge/config"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/repository/memory"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/repository/postgres"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/database"
)

// Set bundles one repository per aggregate over a single backend.
type Set struct {
	Students     domain.StudentRepository
	Companies    domain.CompanyRepository
	Admins       domain.AdminRepository
	Internships  domain.InternshipRepository
	Applications domain.ApplicationRepository
	// Ping is nil for backends with nothing to reach.
	Ping func(ctx context.Context) error
}

// Open connects the configured backend. The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config) (Set, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		r := memory.NewStore().Repositories()
		return Set{
			Students:     r.Students,
			Companies:    r.Companies,
			Admins:       r.Admins,
			Internships:  r.Internships,
			Applications: r.Applications,
		}, func() {}, nil

	case config.StorageDriverPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return Set{}, func() {}, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return Set{}, func() {}, fmt.Errorf("apply schema: %w", err)
		}
		return Set{
			Students:     postgres.NewStudentRepository(pool),
			Companies:    postgres.NewCompanyRepository(pool),
			Admins:       postgres.NewAdminRepository(pool),
			Internships:  postgres.NewInternshipRepository(pool),
			Applications: postgres.NewApplicationRepository(pool),
			Ping:         pool.Ping,
		}, pool.Close, nil

	default:
		return Set{}, func() {}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
