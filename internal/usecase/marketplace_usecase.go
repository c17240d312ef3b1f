package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type marketplaceUsecase struct {
	marketRepo  domain.MarketplaceRepository
	appRepo     domain.ApplicationRepository
	profileRepo domain.ProfileRepository
}

func NewMarketplaceUsecase(
	marketRepo domain.MarketplaceRepository,
	appRepo domain.ApplicationRepository,
	profileRepo domain.ProfileRepository,
) domain.MarketplaceUsecase {
	return &marketplaceUsecase{
		marketRepo:  marketRepo,
		appRepo:     appRepo,
		profileRepo: profileRepo,
	}
}

// positiveOr parses s as an integer >= 1, falling back otherwise
func positiveOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// BuildMarketplaceFilter coerces a raw query into a filter. Invalid page or
// limit values fall back to 1 and 10; limit is capped at 100.
func BuildMarketplaceFilter(q domain.MarketplaceQuery) (domain.MarketplaceFilter, int, error) {
	page := positiveOr(q.Page, defaultPage)
	limit := positiveOr(q.Limit, defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := domain.MarketplaceFilter{
		Search:   strings.TrimSpace(q.Search),
		Location: strings.TrimSpace(q.Location),
		Skill:    strings.TrimSpace(q.Skill),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	if q.Remote != nil {
		remote, err := strconv.ParseBool(strings.TrimSpace(*q.Remote))
		if err != nil {
			remote = false
		}
		filter.Remote = &remote
	}

	if lvl := strings.TrimSpace(q.Level); lvl != "" {
		level := domain.JobLevel(strings.ToUpper(lvl))
		if !level.Valid() {
			return filter, page, apperror.BadRequest("level must be one of: JUNIOR, MID, SENIOR")
		}
		filter.Level = level
	}

	return filter, page, nil
}

func lastPage(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (u *marketplaceUsecase) ListJobs(ctx context.Context, userID string, query domain.MarketplaceQuery) (*domain.MarketplacePage, error) {
	filter, page, err := BuildMarketplaceFilter(query)
	if err != nil {
		return nil, err
	}

	jobs, err := u.marketRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("fetch marketplace jobs: %w", err))
	}
	total, err := u.marketRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("count marketplace jobs: %w", err))
	}

	if userID != "" {
		userSkills, err := u.userSkills(ctx, userID)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("load profile skills: %w", err))
		}
		if len(userSkills) > 0 {
			for i := range jobs {
				score := MatchScore(jobs[i].Skills, userSkills)
				jobs[i].MatchScore = &score
			}
		}
	}

	if jobs == nil {
		jobs = []domain.MarketplaceJobWithCompany{}
	}

	return &domain.MarketplacePage{
		Jobs:     jobs,
		Total:    total,
		Page:     page,
		Limit:    filter.Limit,
		LastPage: lastPage(total, filter.Limit),
	}, nil
}

// userSkills returns the caller's normalized skill set; no profile means none
func (u *marketplaceUsecase) userSkills(ctx context.Context, userID string) (map[string]struct{}, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return skillSet(profile.Skills), nil
}

func (u *marketplaceUsecase) GetJob(ctx context.Context, id string) (*domain.MarketplaceJobWithCompany, error) {
	job, err := u.marketRepo.GetByIDWithCompany(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return job, nil
}

func (u *marketplaceUsecase) SaveJob(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	saved, err := u.marketRepo.SaveJob(ctx, userID, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return saved, nil
}

func (u *marketplaceUsecase) UnsaveJob(ctx context.Context, userID, jobID string) error {
	return repoError(u.marketRepo.UnsaveJob(ctx, userID, jobID), "Job not found")
}

func (u *marketplaceUsecase) ListSavedJobs(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	saved, err := u.marketRepo.ListSaved(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return saved, nil
}

// ApplyToJob records the application and mirrors it onto the user's
// pipeline board atomically. A repeat apply is a conflict.
func (u *marketplaceUsecase) ApplyToJob(ctx context.Context, userID, jobID string) (*domain.Application, error) {
	job, err := u.marketRepo.GetByIDWithCompany(ctx, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}

	now := time.Now().UTC()
	app := &domain.Application{
		UserID:           userID,
		MarketplaceJobID: job.ID,
		Stage:            domain.StageApplied,
		AppliedAt:        now,
	}

	description := job.Description
	mirror := &domain.PipelineJob{
		UserID:          userID,
		Company:         job.Company.Name,
		Title:           job.Title,
		Stage:           domain.StageApplied,
		URL:             job.ApplyURL,
		DescriptionText: &description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.appRepo.CreateWithPipelineJob(ctx, app, mirror); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, repoError(err, "Job not found")
	}

	app.Job = job
	return app, nil
}

func (u *marketplaceUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := u.appRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}
