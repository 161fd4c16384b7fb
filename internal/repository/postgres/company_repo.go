package postgres

import (
	"context"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, company_name, hr_email, password_hash, description, website, status,
	approved_at, rejected_at, rejection_reason, created_at, updated_at`

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.CompanyName, c.HREmail, c.PasswordHash, c.Description, c.Website, c.Status,
		c.ApprovedAt, c.RejectedAt, c.RejectionReason, c.CreatedAt, c.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		return nil, mapReadError(err)
	}
	return c, nil
}

func (r *companyRepo) GetByHREmail(ctx context.Context, email string) (*domain.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE hr_email = $1`, email)
	c, err := scanCompany(row)
	if err != nil {
		return nil, mapReadError(err)
	}
	return c, nil
}

func (r *companyRepo) List(ctx context.Context, status domain.CompanyStatus) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
              WHERE ($1 = '' OR status = $1)
              ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *companyRepo) UpdateStatus(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies
              SET status = $2, approved_at = $3, rejected_at = $4, rejection_reason = $5, updated_at = $6
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, c.ID, c.Status, c.ApprovedAt, c.RejectedAt, c.RejectionReason, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) CountByStatus(ctx context.Context) (map[domain.CompanyStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.CompanyStatus]int64)
	for rows.Next() {
		var status domain.CompanyStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.HREmail, &c.PasswordHash, &c.Description, &c.Website, &c.Status,
		&c.ApprovedAt, &c.RejectedAt, &c.RejectionReason, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
