package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)

// MarketplaceJob is a catalog posting owned by a company
type MarketplaceJob struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Remote      bool      `json:"remote"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Level       JobLevel  `json:"level"`
	Status      JobStatus `json:"status"`
	ApplyURL    *string   `json:"apply_url"`
	PostedAt    time.Time `json:"posted_at"`
}

// MarketplaceJobWithCompany extends MarketplaceJob with its company.
// MatchScore is computed per request for authenticated users and never stored.
type MarketplaceJobWithCompany struct {
	MarketplaceJob
	Company    Company `json:"company"`
	MatchScore *int    `json:"match_score,omitempty"`
}

// MarketplaceFilter is a normalized marketplace query
type MarketplaceFilter struct {
	Search   string
	Location string
	Remote   *bool
	Level    JobLevel
	Skill    string
	Limit    int
	Offset   int
}

// MarketplaceQuery is the raw query as received from the client.
// Page and Limit are strings so invalid values can be coerced instead of rejected.
type MarketplaceQuery struct {
	Search   string
	Location string
	Remote   *string
	Level    string
	Skill    string
	Page     string
	Limit    string
}

type MarketplacePage struct {
	Jobs     []MarketplaceJobWithCompany `json:"jobs"`
	Total    int64                       `json:"total"`
	Page     int                         `json:"page"`
	Limit    int                         `json:"limit"`
	LastPage int                         `json:"last_page"`
}

type SavedJob struct {
	ID               string                     `json:"id"`
	UserID           string                     `json:"user_id"`
	MarketplaceJobID string                     `json:"marketplace_job_id"`
	CreatedAt        time.Time                  `json:"created_at"`
	Job              *MarketplaceJobWithCompany `json:"job,omitempty"`
}

type MarketplaceRepository interface {
	Fetch(ctx context.Context, filter MarketplaceFilter) ([]MarketplaceJobWithCompany, error)
	Count(ctx context.Context, filter MarketplaceFilter) (int64, error)
	GetByIDWithCompany(ctx context.Context, id string) (*MarketplaceJobWithCompany, error)
	CreateBatch(ctx context.Context, jobs []MarketplaceJob) error
	SaveJob(ctx context.Context, userID, jobID string) (*SavedJob, error)
	UnsaveJob(ctx context.Context, userID, jobID string) error
	ListSaved(ctx context.Context, userID string) ([]SavedJob, error)
}

type MarketplaceUsecase interface {
	ListJobs(ctx context.Context, userID string, query MarketplaceQuery) (*MarketplacePage, error)
	GetJob(ctx context.Context, id string) (*MarketplaceJobWithCompany, error)
	SaveJob(ctx context.Context, userID, jobID string) (*SavedJob, error)
	UnsaveJob(ctx context.Context, userID, jobID string) error
	ListSavedJobs(ctx context.Context, userID string) ([]SavedJob, error)
	ApplyToJob(ctx context.Context, userID, jobID string) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
}
