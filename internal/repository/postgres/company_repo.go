package postgres

import (
	"context"

	"skillmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

// UpsertByName inserts the company or, when the name exists, loads the stored
// row into company without changing it.
func (r *companyRepo) UpsertByName(ctx context.Context, company *domain.Company) error {
	query := `
		WITH ins AS (
			INSERT INTO companies (name, website, logo_url, description)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
			RETURNING id, name, website, logo_url, description, created_at
		)
		SELECT id, name, website, logo_url, description, created_at FROM ins
		UNION ALL
		SELECT id, name, website, logo_url, description, created_at FROM companies WHERE name = $1
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, company.Name, company.Website, company.LogoURL, company.Description).Scan(
		&company.ID, &company.Name, &company.Website, &company.LogoURL, &company.Description, &company.CreatedAt,
	)
	return mapError(err)
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, website, logo_url, description, created_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Website, &c.LogoURL, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
