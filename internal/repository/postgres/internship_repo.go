package postgres

import (
	"context"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type internshipRepo struct {
	db *pgxpool.Pool
}

func NewInternshipRepository(db *pgxpool.Pool) domain.InternshipRepository {
	return &internshipRepo{db: db}
}

// internshipSelect joins the owning company so responses carry its projection.
const internshipSelect = `
	SELECT
		i.id, i.title, i.description, i.skills, i.targeted_programmes, i.company_id, i.status,
		i.location, i.duration, i.is_paid, i.salary, i.start_date, i.application_deadline,
		i.number_of_positions, i.application_count, i.created_at, i.updated_at,
		c.company_name, c.website, c.description
	FROM internships i
	JOIN companies c ON c.id = i.company_id`

func (r *internshipRepo) Create(ctx context.Context, in *domain.Internship) error {
	query := `INSERT INTO internships (id, title, description, skills, targeted_programmes, company_id, status,
                location, duration, is_paid, salary, start_date, application_deadline,
                number_of_positions, application_count, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		in.ID, in.Title, in.Description, pq.Array(in.Skills), pq.Array(programmeStrings(in.TargetedProgrammes)),
		in.CompanyID, in.Status, in.Location, in.Duration, in.IsPaid, in.Salary, in.StartDate,
		in.ApplicationDeadline, in.NumberOfPositions, in.ApplicationCount, in.CreatedAt, in.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *internshipRepo) GetByID(ctx context.Context, id string) (*domain.Internship, error) {
	in, err := scanInternship(r.db.QueryRow(ctx, internshipSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return in, nil
}

func (r *internshipRepo) Update(ctx context.Context, in *domain.Internship) error {
	query := `UPDATE internships
              SET title = $2, description = $3, skills = $4, targeted_programmes = $5, status = $6,
                  location = $7, duration = $8, is_paid = $9, salary = $10, start_date = $11,
                  application_deadline = $12, number_of_positions = $13, updated_at = $14
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		in.ID, in.Title, in.Description, pq.Array(in.Skills), pq.Array(programmeStrings(in.TargetedProgrammes)),
		in.Status, in.Location, in.Duration, in.IsPaid, in.Salary, in.StartDate,
		in.ApplicationDeadline, in.NumberOfPositions, in.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *internshipRepo) List(ctx context.Context, f domain.InternshipFilter) ([]domain.Internship, error) {
	query := internshipSelect + `
		WHERE ($1 = '' OR i.status = $1)
		  AND ($2 = '' OR i.company_id::text = $2)
		  AND ($3 = '' OR $3 = ANY(i.targeted_programmes))
		ORDER BY i.created_at DESC`

	rows, err := r.db.Query(ctx, query, string(f.Status), f.CompanyID, string(f.Programme))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	internships := []domain.Internship{}
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		internships = append(internships, *in)
	}
	return internships, rows.Err()
}

func (r *internshipRepo) CountByStatus(ctx context.Context) (map[domain.InternshipStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM internships GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.InternshipStatus]int64)
	for rows.Next() {
		var status domain.InternshipStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanInternship(row pgx.Row) (*domain.Internship, error) {
	var in domain.Internship
	var skills, programmes []string
	company := &domain.CompanySummary{}
	err := row.Scan(
		&in.ID, &in.Title, &in.Description, pq.Array(&skills), pq.Array(&programmes), &in.CompanyID, &in.Status,
		&in.Location, &in.Duration, &in.IsPaid, &in.Salary, &in.StartDate, &in.ApplicationDeadline,
		&in.NumberOfPositions, &in.ApplicationCount, &in.CreatedAt, &in.UpdatedAt,
		&company.CompanyName, &company.Website, &company.Description,
	)
	if err != nil {
		return nil, err
	}
	in.Skills = skills
	in.TargetedProgrammes = make([]domain.Programme, len(programmes))
	for i, p := range programmes {
		in.TargetedProgrammes[i] = domain.Programme(p)
	}
	company.ID = in.CompanyID
	in.Company = company
	return &in, nil
}

func programmeStrings(ps []domain.Programme) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
