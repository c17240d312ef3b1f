package domain

import (
	"context"
	"time"
)

type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	LogoURL     *string   `json:"logo_url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CompanyRepository interface {
	// UpsertByName creates the company or leaves an existing one untouched,
	// returning the stored row either way.
	UpsertByName(ctx context.Context, company *Company) error
	List(ctx context.Context) ([]Company, error)
}
