package postgres

import (
	"context"

	"skillmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, user_id, first_name, last_name, username, phone, location, headline, summary,
	links, skills, education, experience, projects, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var education, experience, projects []byte
	if err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Username, &p.Phone, &p.Location, &p.Headline, &p.Summary,
		pq.Array(&p.Links), pq.Array(&p.Skills), &education, &experience, &projects, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := scanJSONB(education, &p.Education); err != nil {
		return nil, err
	}
	if err := scanJSONB(experience, &p.Experience); err != nil {
		return nil, err
	}
	if err := scanJSONB(projects, &p.Projects); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// Upsert writes only the fields present in update. On conflict every
// omitted (NULL) field keeps the stored value.
func (r *profileRepo) Upsert(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	education, err := jsonbParam(update.Education)
	if err != nil {
		return nil, err
	}
	experience, err := jsonbParam(update.Experience)
	if err != nil {
		return nil, err
	}
	projects, err := jsonbParam(update.Projects)
	if err != nil {
		return nil, err
	}

	var links, skills interface{}
	if update.Links != nil {
		links = pq.Array(update.Links)
	}
	if update.Skills != nil {
		skills = pq.Array(update.Skills)
	}

	query := `
		INSERT INTO user_profiles (user_id, first_name, last_name, username, phone, location, headline, summary,
			links, skills, education, experience, projects)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::text[], $10::text[], $11::jsonb, $12::jsonb, $13::jsonb)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = COALESCE(EXCLUDED.first_name, user_profiles.first_name),
			last_name  = COALESCE(EXCLUDED.last_name, user_profiles.last_name),
			username   = COALESCE(EXCLUDED.username, user_profiles.username),
			phone      = COALESCE(EXCLUDED.phone, user_profiles.phone),
			location   = COALESCE(EXCLUDED.location, user_profiles.location),
			headline   = COALESCE(EXCLUDED.headline, user_profiles.headline),
			summary    = COALESCE(EXCLUDED.summary, user_profiles.summary),
			links      = COALESCE(EXCLUDED.links, user_profiles.links),
			skills     = COALESCE(EXCLUDED.skills, user_profiles.skills),
			education  = COALESCE(EXCLUDED.education, user_profiles.education),
			experience = COALESCE(EXCLUDED.experience, user_profiles.experience),
			projects   = COALESCE(EXCLUDED.projects, user_profiles.projects),
			updated_at = now()
		RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRow(ctx, query,
		userID, update.FirstName, update.LastName, update.Username, update.Phone, update.Location,
		update.Headline, update.Summary, links, skills, education, experience, projects,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}
