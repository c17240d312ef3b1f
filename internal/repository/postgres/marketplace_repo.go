package postgres

import (
	"context"
	"fmt"
	"strings"

	"skillmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type marketplaceRepo struct {
	db *pgxpool.Pool
}

func NewMarketplaceRepository(db *pgxpool.Pool) domain.MarketplaceRepository {
	return &marketplaceRepo{db: db}
}

const marketplaceJobColumns = `
	j.id, j.company_id, j.title, j.location, j.remote, j.description, j.skills,
	j.level, j.status, j.apply_url, j.posted_at,
	c.id, c.name, c.website, c.logo_url, c.description, c.created_at`

const marketplaceJobFrom = `
	FROM marketplace_jobs j
	JOIN companies c ON c.id = j.company_id`

func scanMarketplaceJob(row pgx.Row, job *domain.MarketplaceJobWithCompany) error {
	return row.Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Location, &job.Remote, &job.Description, pq.Array(&job.Skills),
		&job.Level, &job.Status, &job.ApplyURL, &job.PostedAt,
		&job.Company.ID, &job.Company.Name, &job.Company.Website, &job.Company.LogoURL, &job.Company.Description, &job.Company.CreatedAt,
	)
}

// escapeLike makes s match literally inside an ILIKE pattern
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildMarketplaceWhere renders the WHERE clause shared by Fetch and Count.
// Only OPEN jobs are ever returned.
func buildMarketplaceWhere(filter domain.MarketplaceFilter) (string, []interface{}) {
	where := " WHERE j.status = 'OPEN'"
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (j.title ILIKE $%d OR j.description ILIKE $%d OR c.name ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIndex++
	}
	if filter.Location != "" {
		where += fmt.Sprintf(" AND j.location ILIKE $%d", argIndex)
		args = append(args, "%"+escapeLike(filter.Location)+"%")
		argIndex++
	}
	if filter.Remote != nil {
		where += fmt.Sprintf(" AND j.remote = $%d", argIndex)
		args = append(args, *filter.Remote)
		argIndex++
	}
	if filter.Level != "" {
		where += fmt.Sprintf(" AND j.level = $%d", argIndex)
		args = append(args, string(filter.Level))
		argIndex++
	}
	if filter.Skill != "" {
		where += fmt.Sprintf(" AND $%d = ANY(j.skills)", argIndex)
		args = append(args, filter.Skill)
	}

	return where, args
}

func (r *marketplaceRepo) Fetch(ctx context.Context, filter domain.MarketplaceFilter) ([]domain.MarketplaceJobWithCompany, error) {
	where, args := buildMarketplaceWhere(filter)
	query := "SELECT" + marketplaceJobColumns + marketplaceJobFrom + where +
		" ORDER BY j.posted_at DESC, j.id DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.MarketplaceJobWithCompany{}
	for rows.Next() {
		var job domain.MarketplaceJobWithCompany
		if err := scanMarketplaceJob(rows, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *marketplaceRepo) Count(ctx context.Context, filter domain.MarketplaceFilter) (int64, error) {
	where, args := buildMarketplaceWhere(filter)
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*)"+marketplaceJobFrom+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *marketplaceRepo) GetByIDWithCompany(ctx context.Context, id string) (*domain.MarketplaceJobWithCompany, error) {
	query := "SELECT" + marketplaceJobColumns + marketplaceJobFrom + " WHERE j.id = $1"
	var job domain.MarketplaceJobWithCompany
	if err := scanMarketplaceJob(r.db.QueryRow(ctx, query, id), &job); err != nil {
		return nil, mapError(err)
	}
	return &job, nil
}

// CreateBatch inserts jobs in a single round trip
func (r *marketplaceRepo) CreateBatch(ctx context.Context, jobs []domain.MarketplaceJob) error {
	if len(jobs) == 0 {
		return nil
	}
	query := `INSERT INTO marketplace_jobs (id, company_id, title, location, remote, description, skills, level, status, apply_url, posted_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	batch := &pgx.Batch{}
	for _, j := range jobs {
		batch.Queue(query,
			j.ID, j.CompanyID, j.Title, j.Location, j.Remote, j.Description, pq.Array(j.Skills),
			string(j.Level), string(j.Status), j.ApplyURL, j.PostedAt,
		)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return mapError(err)
	}
	return nil
}

// SaveJob bookmarks a job. Saving twice returns the existing bookmark.
func (r *marketplaceRepo) SaveJob(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	query := `
		WITH ins AS (
			INSERT INTO saved_jobs (user_id, marketplace_job_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, marketplace_job_id) DO NOTHING
			RETURNING id, user_id, marketplace_job_id, created_at
		)
		SELECT id, user_id, marketplace_job_id, created_at FROM ins
		UNION ALL
		SELECT id, user_id, marketplace_job_id, created_at FROM saved_jobs
		WHERE user_id = $1 AND marketplace_job_id = $2
		LIMIT 1`

	var saved domain.SavedJob
	err := r.db.QueryRow(ctx, query, userID, jobID).Scan(
		&saved.ID, &saved.UserID, &saved.MarketplaceJobID, &saved.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &saved, nil
}

func (r *marketplaceRepo) UnsaveJob(ctx context.Context, userID, jobID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND marketplace_job_id = $2`, userID, jobID)
	if mapped := mapError(err); mapped == domain.ErrNotFound {
		return nil
	}
	return err
}

func (r *marketplaceRepo) ListSaved(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	query := `SELECT s.id, s.user_id, s.marketplace_job_id, s.created_at,` + marketplaceJobColumns + marketplaceJobFrom + `
		JOIN saved_jobs s ON s.marketplace_job_id = j.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saved := []domain.SavedJob{}
	for rows.Next() {
		var s domain.SavedJob
		job := &domain.MarketplaceJobWithCompany{}
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.MarketplaceJobID, &s.CreatedAt,
			&job.ID, &job.CompanyID, &job.Title, &job.Location, &job.Remote, &job.Description, pq.Array(&job.Skills),
			&job.Level, &job.Status, &job.ApplyURL, &job.PostedAt,
			&job.Company.ID, &job.Company.Name, &job.Company.Website, &job.Company.LogoURL, &job.Company.Description, &job.Company.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Job = job
		saved = append(saved, s)
	}
	return saved, rows.Err()
}
