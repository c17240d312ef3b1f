package domain

import (
	"context"
	"time"
)

type ExperienceEntry struct {
	Company     string `json:"company,omitempty" validate:"max=200"`
	Title       string `json:"title,omitempty" validate:"max=200"`
	Location    string `json:"location,omitempty" validate:"max=200"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	Raw         string `json:"raw,omitempty"`
}

type EducationEntry struct {
	School    string `json:"school,omitempty" validate:"max=200"`
	Degree    string `json:"degree,omitempty" validate:"max=200"`
	Field     string `json:"field,omitempty" validate:"max=200"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Raw       string `json:"raw,omitempty"`
}

type ProjectEntry struct {
	Name         string   `json:"name,omitempty" validate:"max=200"`
	Description  string   `json:"description,omitempty" validate:"max=5000"`
	URL          string   `json:"url,omitempty" validate:"max=2048"`
	Technologies []string `json:"technologies,omitempty"`
	Raw          string   `json:"raw,omitempty"`
}

// UserProfile is the structured résumé data of a user (one per user)
type UserProfile struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	FirstName  *string           `json:"first_name"`
	LastName   *string           `json:"last_name"`
	Username   *string           `json:"username"`
	Phone      *string           `json:"phone"`
	Location   *string           `json:"location"`
	Headline   *string           `json:"headline"`
	Summary    *string           `json:"summary"`
	Links      []string          `json:"links"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ProfileUpdate is a partial profile write. Nil fields keep their stored
// value on update and stay unset on create.
type ProfileUpdate struct {
	FirstName  *string           `json:"first_name" validate:"omitempty,max=100,valid_name,no_emoji"`
	LastName   *string           `json:"last_name" validate:"omitempty,max=100,valid_name,no_emoji"`
	Username   *string           `json:"username" validate:"omitempty,max=50"`
	Phone      *string           `json:"phone" validate:"omitempty,valid_phone"`
	Location   *string           `json:"location" validate:"omitempty,max=200"`
	Headline   *string           `json:"headline" validate:"omitempty,max=200"`
	Summary    *string           `json:"summary" validate:"omitempty,max=2000"`
	// Links keep the parser's shape, which may omit the scheme ("github.com/ada")
	Links      []string          `json:"links" validate:"omitempty,max=20,dive,required,max=2048"`
	Skills     []string          `json:"skills" validate:"omitempty,max=100,dive,required,max=60"`
	Education  []EducationEntry  `json:"education" validate:"omitempty,max=20,dive"`
	Experience []ExperienceEntry `json:"experience" validate:"omitempty,max=30,dive"`
	Projects   []ProjectEntry    `json:"projects" validate:"omitempty,max=30,dive"`
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)
	Upsert(ctx context.Context, userID string, update ProfileUpdate) (*UserProfile, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*UserProfile, error)
}
