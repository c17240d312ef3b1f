package postgres

import (
	"context"

	"skillmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pipelineRepo struct {
	db *pgxpool.Pool
}

func NewPipelineRepository(db *pgxpool.Pool) domain.PipelineRepository {
	return &pipelineRepo{db: db}
}

const pipelineColumns = `id, user_id, company, title, stage, url, deadline, notes, description_text, created_at, updated_at`

func scanPipelineJob(row pgx.Row, job *domain.PipelineJob) error {
	return row.Scan(
		&job.ID, &job.UserID, &job.Company, &job.Title, &job.Stage, &job.URL,
		&job.Deadline, &job.Notes, &job.DescriptionText, &job.CreatedAt, &job.UpdatedAt,
	)
}

func (r *pipelineRepo) Create(ctx context.Context, job *domain.PipelineJob) error {
	query := `INSERT INTO jobs (user_id, company, title, stage, url, deadline, notes, description_text, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.UserID, job.Company, job.Title, string(job.Stage), job.URL,
		job.Deadline, job.Notes, job.DescriptionText, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *pipelineRepo) GetByID(ctx context.Context, userID, id string) (*domain.PipelineJob, error) {
	query := `SELECT ` + pipelineColumns + ` FROM jobs WHERE id = $1 AND user_id = $2`
	var job domain.PipelineJob
	if err := scanPipelineJob(r.db.QueryRow(ctx, query, id, userID), &job); err != nil {
		return nil, mapError(err)
	}
	return &job, nil
}

func (r *pipelineRepo) ListByUser(ctx context.Context, userID string, stage *domain.Stage) ([]domain.PipelineJob, error) {
	query := `SELECT ` + pipelineColumns + ` FROM jobs WHERE user_id = $1`
	args := []interface{}{userID}
	if stage != nil {
		query += ` AND stage = $2`
		args = append(args, string(*stage))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.PipelineJob{}
	for rows.Next() {
		var job domain.PipelineJob
		if err := scanPipelineJob(rows, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *pipelineRepo) Update(ctx context.Context, job *domain.PipelineJob) error {
	query := `UPDATE jobs
              SET company = $3, title = $4, stage = $5, url = $6, deadline = $7,
                  notes = $8, description_text = $9, updated_at = $10
              WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.UserID, job.Company, job.Title, string(job.Stage), job.URL,
		job.Deadline, job.Notes, job.DescriptionText, job.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *pipelineRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
