package domain

import (
	"context"
	"time"
)

// PipelineJob is a personal tracked application on the user's board.
// Company is a denormalized name, decoupled from the marketplace catalog.
type PipelineJob struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Company         string     `json:"company"`
	Title           string     `json:"title"`
	Stage           Stage      `json:"stage"`
	URL             *string    `json:"url"`
	Deadline        *time.Time `json:"deadline"`
	Notes           *string    `json:"notes"`
	DescriptionText *string    `json:"description_text"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PipelineJobPatch carries a partial update; nil fields are left untouched
type PipelineJobPatch struct {
	Company         *string
	Title           *string
	Stage           *Stage
	URL             *string
	Deadline        *time.Time
	Notes           *string
	DescriptionText *string
}

// BoardColumn groups a user's pipeline jobs under one stage
type BoardColumn struct {
	Stage Stage         `json:"stage"`
	Jobs  []PipelineJob `json:"jobs"`
}

type PipelineRepository interface {
	Create(ctx context.Context, job *PipelineJob) error
	GetByID(ctx context.Context, userID, id string) (*PipelineJob, error)
	ListByUser(ctx context.Context, userID string, stage *Stage) ([]PipelineJob, error)
	Update(ctx context.Context, job *PipelineJob) error
	Delete(ctx context.Context, userID, id string) error
}

type PipelineUsecase interface {
	CreateJob(ctx context.Context, userID string, job *PipelineJob) error
	ListJobs(ctx context.Context, userID string, stage string) ([]PipelineJob, error)
	GetJob(ctx context.Context, userID, id string) (*PipelineJob, error)
	UpdateJob(ctx context.Context, userID, id string, patch PipelineJobPatch) (*PipelineJob, error)
	DeleteJob(ctx context.Context, userID, id string) error
	Board(ctx context.Context, userID string) ([]BoardColumn, error)
}
