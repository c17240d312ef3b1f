package postgres

import (
	"context"
	"encoding/json"

	"skillmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	var parsed *string
	if len(resume.ParsedJSON) > 0 {
		s := string(resume.ParsedJSON)
		parsed = &s
	}

	query := `INSERT INTO resumes (user_id, file_key, file_url, extracted_text, parsed_json, created_at)
              VALUES ($1, $2, $3, $4, $5::jsonb, $6) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		resume.UserID, resume.FileKey, resume.FileURL, resume.ExtractedText, parsed, resume.CreatedAt,
	).Scan(&resume.ID)
	return mapError(err)
}

func (r *resumeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	query := `SELECT id, user_id, file_key, file_url, extracted_text, parsed_json, created_at
              FROM resumes WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resumes := []domain.Resume{}
	for rows.Next() {
		var res domain.Resume
		var parsed []byte
		if err := rows.Scan(&res.ID, &res.UserID, &res.FileKey, &res.FileURL, &res.ExtractedText, &parsed, &res.CreatedAt); err != nil {
			return nil, err
		}
		if len(parsed) > 0 {
			res.ParsedJSON = json.RawMessage(parsed)
		}
		resumes = append(resumes, res)
	}
	return resumes, rows.Err()
}
