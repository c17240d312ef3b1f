package usecase

import (
	"context"
	"strings"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"
	"skillmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
}

func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{repo: repo, validate: validate}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Profile not found")
	}
	return profile, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	update.Skills = cleanSkills(update.Skills)

	if err := u.validate.Struct(update); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + validation.Message(err))
	}

	profile, err := u.repo.Upsert(ctx, userID, update)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return profile, nil
}

// cleanSkills trims entries and drops blanks and case-insensitive repeats,
// keeping the first spelling. A nil slice stays nil so it is not written.
func cleanSkills(skills []string) []string {
	if skills == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
