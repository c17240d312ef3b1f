package domain

import (
	"context"
	"time"
)

// Application records an apply action against a marketplace job
type Application struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	MarketplaceJobID string    `json:"marketplace_job_id"`
	Stage            Stage     `json:"stage"`
	AppliedAt        time.Time `json:"applied_at"`

	// Joined data for list responses
	Job *MarketplaceJobWithCompany `json:"job,omitempty"`
}

type ApplicationRepository interface {
	// CreateWithPipelineJob writes the application and its mirrored pipeline
	// entry in one transaction. A second apply by the same user to the same
	// job returns ErrDuplicate and writes nothing.
	CreateWithPipelineJob(ctx context.Context, app *Application, mirror *PipelineJob) error
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
}
