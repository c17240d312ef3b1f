package postgres

import (
	"context"

	"skillmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) CreateWithPipelineJob(ctx context.Context, app *domain.Application, mirror *domain.PipelineJob) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO applications (user_id, marketplace_job_id, stage, applied_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		app.UserID, app.MarketplaceJobID, string(app.Stage), app.AppliedAt,
	).Scan(&app.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return mapError(err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO jobs (user_id, company, title, stage, url, deadline, notes, description_text, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		mirror.UserID, mirror.Company, mirror.Title, string(mirror.Stage), mirror.URL,
		mirror.Deadline, mirror.Notes, mirror.DescriptionText, mirror.CreatedAt, mirror.UpdatedAt,
	).Scan(&mirror.ID)
	if err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT a.id, a.user_id, a.marketplace_job_id, a.stage, a.applied_at,` + marketplaceJobColumns + marketplaceJobFrom + `
		JOIN applications a ON a.marketplace_job_id = j.id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var a domain.Application
		job := &domain.MarketplaceJobWithCompany{}
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.MarketplaceJobID, &a.Stage, &a.AppliedAt,
			&job.ID, &job.CompanyID, &job.Title, &job.Location, &job.Remote, &job.Description, pq.Array(&job.Skills),
			&job.Level, &job.Status, &job.ApplyURL, &job.PostedAt,
			&job.Company.ID, &job.Company.Name, &job.Company.Website, &job.Company.LogoURL, &job.Company.Description, &job.Company.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Job = job
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
