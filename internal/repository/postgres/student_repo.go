package postgres

import (
	"context"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type studentRepo struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) domain.StudentRepository {
	return &studentRepo{db: db}
}

const studentColumns = `id, name, email, password_hash, student_id, programme, skills, resume_url, created_at, updated_at`

func (r *studentRepo) Create(ctx context.Context, s *domain.Student) error {
	query := `INSERT INTO students (` + studentColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Email, s.PasswordHash, s.StudentID, s.Programme,
		pq.Array(s.Skills), s.ResumeURL, s.CreatedAt, s.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE email = $1`, email)
}

func (r *studentRepo) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID)
}

func (r *studentRepo) getOne(ctx context.Context, query string, arg any) (*domain.Student, error) {
	var s domain.Student
	var skills []string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.StudentID, &s.Programme,
		pq.Array(&skills), &s.ResumeURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapReadError(err)
	}
	s.Skills = skills
	return &s, nil
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}
