package usecase

import (
	"context"
	"strings"
	"time"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"
)

type pipelineUsecase struct {
	repo domain.PipelineRepository
}

func NewPipelineUsecase(repo domain.PipelineRepository) domain.PipelineUsecase {
	return &pipelineUsecase{repo: repo}
}

func parseStage(s string) (domain.Stage, error) {
	stage := domain.Stage(strings.ToUpper(strings.TrimSpace(s)))
	if !stage.Valid() {
		return "", apperror.BadRequest("stage must be one of: SAVED, APPLIED, OA, INTERVIEW, OFFER, REJECTED")
	}
	return stage, nil
}

func (u *pipelineUsecase) CreateJob(ctx context.Context, userID string, job *domain.PipelineJob) error {
	job.Company = strings.TrimSpace(job.Company)
	job.Title = strings.TrimSpace(job.Title)
	if job.Company == "" || job.Title == "" {
		return apperror.BadRequest("company and title are required")
	}
	if job.Stage == "" {
		job.Stage = domain.StageSaved
	}
	if !job.Stage.Valid() {
		return apperror.BadRequest("Invalid stage")
	}

	now := time.Now().UTC()
	job.UserID = userID
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := u.repo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *pipelineUsecase) ListJobs(ctx context.Context, userID string, stage string) ([]domain.PipelineJob, error) {
	var filter *domain.Stage
	if strings.TrimSpace(stage) != "" {
		s, err := parseStage(stage)
		if err != nil {
			return nil, err
		}
		filter = &s
	}

	jobs, err := u.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *pipelineUsecase) GetJob(ctx context.Context, userID, id string) (*domain.PipelineJob, error) {
	job, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return job, nil
}

func (u *pipelineUsecase) UpdateJob(ctx context.Context, userID, id string, patch domain.PipelineJobPatch) (*domain.PipelineJob, error) {
	job, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}

	if patch.Company != nil {
		if strings.TrimSpace(*patch.Company) == "" {
			return nil, apperror.BadRequest("company cannot be empty")
		}
		job.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperror.BadRequest("title cannot be empty")
		}
		job.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Stage != nil {
		if !patch.Stage.Valid() {
			return nil, apperror.BadRequest("Invalid stage")
		}
		job.Stage = *patch.Stage
	}
	if patch.URL != nil {
		job.URL = patch.URL
	}
	if patch.Deadline != nil {
		job.Deadline = patch.Deadline
	}
	if patch.Notes != nil {
		job.Notes = patch.Notes
	}
	if patch.DescriptionText != nil {
		job.DescriptionText = patch.DescriptionText
	}
	job.UpdatedAt = time.Now().UTC()

	if err := u.repo.Update(ctx, job); err != nil {
		return nil, repoError(err, "Job not found")
	}
	return job, nil
}

func (u *pipelineUsecase) DeleteJob(ctx context.Context, userID, id string) error {
	return repoError(u.repo.Delete(ctx, userID, id), "Job not found")
}

// Board returns one column per stage in canonical order, empty columns included
func (u *pipelineUsecase) Board(ctx context.Context, userID string) ([]domain.BoardColumn, error) {
	jobs, err := u.repo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	byStage := make(map[domain.Stage][]domain.PipelineJob, len(domain.Stages))
	for _, j := range jobs {
		byStage[j.Stage] = append(byStage[j.Stage], j)
	}

	board := make([]domain.BoardColumn, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		col := byStage[s]
		if col == nil {
			col = []domain.PipelineJob{}
		}
		board = append(board, domain.BoardColumn{Stage: s, Jobs: col})
	}
	return board, nil
}
