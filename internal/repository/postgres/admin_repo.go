package postgres

import (
	"context"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

const adminColumns = `id, name, email, password_hash, permissions, last_login, created_at, updated_at`

func (r *adminRepo) Create(ctx context.Context, a *domain.Admin) error {
	query := `INSERT INTO admins (` + adminColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Name, a.Email, a.PasswordHash, pq.Array(a.Permissions), a.LastLogin, a.CreatedAt, a.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
}

func (r *adminRepo) getOne(ctx context.Context, query, arg string) (*domain.Admin, error) {
	var a domain.Admin
	var permissions []string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, pq.Array(&permissions), &a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapReadError(err)
	}
	a.Permissions = permissions
	return &a, nil
}

func (r *adminRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE admins SET last_login = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
