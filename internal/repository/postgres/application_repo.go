package postgres

import (
	"context"
	"fmt"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// applicationSelect joins the student and internship (with its company) projections.
const applicationSelect = `
	SELECT
		a.id, a.student_id, a.internship_id, a.status, a.cover_letter, a.resume_url, a.notes,
		a.applied_at, a.reviewed_at, a.responded_at, a.created_at, a.updated_at,
		s.name, s.email, s.student_id, s.programme, s.skills, s.resume_url,
		i.title, i.description, i.skills, i.status,
		c.id, c.company_name, c.website, c.description
	FROM applications a
	JOIN students s ON s.id = a.student_id
	JOIN internships i ON i.id = a.internship_id
	JOIN companies c ON c.id = i.company_id`

// Create inserts the application and its first history entry and bumps the
// internship's application count in one transaction.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO applications (id, student_id, internship_id, status, cover_letter, resume_url, notes,
                applied_at, reviewed_at, responded_at, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = tx.Exec(ctx, query,
		app.ID, app.StudentID, app.InternshipID, app.Status, app.CoverLetter, app.ResumeURL, app.Notes,
		app.AppliedAt, app.ReviewedAt, app.RespondedAt, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}

	for _, change := range app.StatusHistory {
		if err := insertHistory(ctx, tx, app.ID, change); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `UPDATE internships SET application_count = application_count + 1 WHERE id = $1`, app.InternshipID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}

	history, err := r.history(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	app.StatusHistory = history
	return app, nil
}

func (r *applicationRepo) Exists(ctx context.Context, studentID, internshipID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE student_id = $1 AND internship_id = $2)`,
		studentID, internshipID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.student_id = $1 ORDER BY a.applied_at DESC`, studentID)
}

func (r *applicationRepo) ListByInternship(ctx context.Context, internshipID string) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.internship_id = $1 ORDER BY a.applied_at DESC`, internshipID)
}

func (r *applicationRepo) list(ctx context.Context, query, arg string) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range applications {
		history, err := r.history(ctx, applications[i].ID)
		if err != nil {
			return nil, err
		}
		applications[i].StatusHistory = history
	}
	return applications, nil
}

// UpdateStatus writes the status columns and appends change in one transaction.
func (r *applicationRepo) UpdateStatus(ctx context.Context, app *domain.Application, change domain.StatusChange) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE applications
              SET status = $2, notes = $3, reviewed_at = $4, responded_at = $5, updated_at = $6
              WHERE id = $1`
	tag, err := tx.Exec(ctx, query, app.ID, app.Status, app.Notes, app.ReviewedAt, app.RespondedAt, app.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := insertHistory(ctx, tx, app.ID, change); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n)
	return n, err
}

func (r *applicationRepo) history(ctx context.Context, applicationID string) ([]domain.StatusChange, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, changed_at, notes FROM application_status_history WHERE application_id = $1 ORDER BY id`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []domain.StatusChange{}
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(&change.Status, &change.ChangedAt, &change.Notes); err != nil {
			return nil, err
		}
		history = append(history, change)
	}
	return history, rows.Err()
}

func insertHistory(ctx context.Context, tx pgx.Tx, applicationID string, change domain.StatusChange) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO application_status_history (application_id, status, notes, changed_at) VALUES ($1, $2, $3, $4)`,
		applicationID, change.Status, change.Notes, change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	student := &domain.StudentSummary{}
	internship := &domain.InternshipSummary{}
	company := &domain.CompanySummary{}
	var studentSkills, internshipSkills []string

	err := row.Scan(
		&app.ID, &app.StudentID, &app.InternshipID, &app.Status, &app.CoverLetter, &app.ResumeURL, &app.Notes,
		&app.AppliedAt, &app.ReviewedAt, &app.RespondedAt, &app.CreatedAt, &app.UpdatedAt,
		&student.Name, &student.Email, &student.StudentID, &student.Programme, pq.Array(&studentSkills), &student.ResumeURL,
		&internship.Title, &internship.Description, pq.Array(&internshipSkills), &internship.Status,
		&company.ID, &company.CompanyName, &company.Website, &company.Description,
	)
	if err != nil {
		return nil, err
	}
	student.ID = app.StudentID
	student.Skills = studentSkills
	internship.ID = app.InternshipID
	internship.Skills = internshipSkills
	internship.Company = company
	app.Student = student
	app.Internship = internship
	return &app, nil
}
