package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/internal/usecase"
	"skillmatch-backend/pkg/apperror"
	"skillmatch-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	exp := time.Now().Add(time.Hour)

	t.Run("Should normalize email and hash password", func(t *testing.T) {
		repo := new(MockUserRepo)
		tokens := new(MockTokenIssuer)
		uc := usecase.NewAuthUsecase(repo, tokens, validation.New())

		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ada@example.com" && u.Role == domain.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")) == nil
		})).Return(nil)
		tokens.On("Issue", mock.Anything, "ada@example.com", domain.RoleUser).Return("tok", exp, nil)

		res, err := uc.Register(context.Background(), "  Ada@Example.com ", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "tok", res.Token)
		assert.Equal(t, "ada@example.com", res.User.Email)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject duplicate email with conflict", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, new(MockTokenIssuer), validation.New())
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, err := uc.Register(context.Background(), "ada@example.com", "password123")
		assert.Equal(t, http.StatusConflict, appCode(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject short password and bad email before storage", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, new(MockTokenIssuer), validation.New())

		_, err := uc.Register(context.Background(), "ada@example.com", "short")
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		_, err = uc.Register(context.Background(), "not-an-email", "password123")
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Email: "ada@example.com", PasswordHash: string(hash), Role: domain.RoleUser}

	repo := new(MockUserRepo)
	tokens := new(MockTokenIssuer)
	uc := usecase.NewAuthUsecase(repo, tokens, validation.New())
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)
	tokens.On("Issue", "u1", "ada@example.com", domain.RoleUser).Return("tok", time.Now(), nil)

	res, err := uc.Login(context.Background(), "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)

	_, err = uc.Login(context.Background(), "ada@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, appCode(t, err))

	_, err = uc.Login(context.Background(), "ghost@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, appCode(t, err))
}

func TestMatchScore(t *testing.T) {
	user := map[string]struct{}{"react": {}, "python": {}}

	assert.Equal(t, 50, usecase.MatchScore([]string{"React", "Node"}, user))
	assert.Equal(t, 0, usecase.MatchScore([]string{"Go"}, user))
	assert.Equal(t, 0, usecase.MatchScore(nil, user))
	assert.Equal(t, 100, usecase.MatchScore([]string{"REACT", "react", " Python "}, user))
	assert.Equal(t, 33, usecase.MatchScore([]string{"react", "go", "rust"}, user))
	assert.Equal(t, 67, usecase.MatchScore([]string{"react", "python", "rust"}, user))
}

func TestBuildMarketplaceFilter(t *testing.T) {
	t.Run("Should coerce invalid page and limit", func(t *testing.T) {
		f, page, err := usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{Page: "abc", Limit: "-5"})
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, f.Limit)
		assert.Equal(t, 0, f.Offset)
	})

	t.Run("Should compute offset and cap limit", func(t *testing.T) {
		f, page, err := usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{Page: "3", Limit: "500"})
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 100, f.Limit)
		assert.Equal(t, 200, f.Offset)
	})

	t.Run("Should parse remote leniently", func(t *testing.T) {
		f, _, _ := usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{Remote: strPtr("1")})
		require.NotNil(t, f.Remote)
		assert.True(t, *f.Remote)

		f, _, _ = usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{Remote: strPtr("maybe")})
		require.NotNil(t, f.Remote)
		assert.False(t, *f.Remote)

		f, _, _ = usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{})
		assert.Nil(t, f.Remote)
	})

	t.Run("Should reject unknown level", func(t *testing.T) {
		_, _, err := usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{Level: "PRINCIPAL"})
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))

		f, _, err := usecase.BuildMarketplaceFilter(domain.MarketplaceQuery{Level: "senior"})
		require.NoError(t, err)
		assert.Equal(t, domain.LevelSenior, f.Level)
	})
}

func marketJob(id string, skills ...string) domain.MarketplaceJobWithCompany {
	return domain.MarketplaceJobWithCompany{
		MarketplaceJob: domain.MarketplaceJob{ID: id, Title: "Engineer " + id, Skills: skills, Status: domain.JobStatusOpen},
		Company:        domain.Company{ID: "c1", Name: "Acme"},
	}
}

func TestListJobsScoring(t *testing.T) {
	jobs := []domain.MarketplaceJobWithCompany{
		marketJob("j1", "React", "Node"),
		marketJob("j2", "Go"),
		marketJob("j3"),
	}

	t.Run("Should annotate scores for user with skills", func(t *testing.T) {
		market := new(MockMarketplaceRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), profiles)

		fetched := append([]domain.MarketplaceJobWithCompany(nil), jobs...)
		market.On("Fetch", mock.Anything, mock.Anything).Return(fetched, nil)
		market.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)
		profiles.On("GetByUserID", mock.Anything, "u1").Return(&domain.UserProfile{Skills: []string{"react", "python"}}, nil)

		page, err := uc.ListJobs(context.Background(), "u1", domain.MarketplaceQuery{})
		require.NoError(t, err)
		require.Len(t, page.Jobs, 3)

		scores := []int{}
		for _, j := range page.Jobs {
			require.NotNil(t, j.MatchScore)
			scores = append(scores, *j.MatchScore)
		}
		assert.Equal(t, []int{50, 0, 0}, scores)
		assert.Equal(t, 1, page.LastPage)
	})

	t.Run("Should omit scores for anonymous and skill-less users", func(t *testing.T) {
		for _, userID := range []string{"", "u2"} {
			market := new(MockMarketplaceRepo)
			profiles := new(MockProfileRepo)
			uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), profiles)

			fetched := append([]domain.MarketplaceJobWithCompany(nil), jobs...)
			market.On("Fetch", mock.Anything, mock.Anything).Return(fetched, nil)
			market.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)
			profiles.On("GetByUserID", mock.Anything, "u2").Return(nil, domain.ErrNotFound)

			page, err := uc.ListJobs(context.Background(), userID, domain.MarketplaceQuery{})
			require.NoError(t, err)
			for _, j := range page.Jobs {
				assert.Nil(t, j.MatchScore)
			}
		}
	})

	t.Run("Should report totals for out of range page", func(t *testing.T) {
		market := new(MockMarketplaceRepo)
		uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), new(MockProfileRepo))

		market.On("Fetch", mock.Anything, mock.MatchedBy(func(f domain.MarketplaceFilter) bool {
			return f.Offset == 90 && f.Limit == 10
		})).Return([]domain.MarketplaceJobWithCompany{}, nil)
		market.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil)

		page, err := uc.ListJobs(context.Background(), "", domain.MarketplaceQuery{Page: "10"})
		require.NoError(t, err)
		assert.Empty(t, page.Jobs)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 3, page.LastPage)
		assert.Equal(t, 10, page.Page)
	})

	t.Run("Should surface storage failure as internal error", func(t *testing.T) {
		market := new(MockMarketplaceRepo)
		uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), new(MockProfileRepo))
		cause := errors.New("connection refused")
		market.On("Fetch", mock.Anything, mock.Anything).Return(nil, cause)

		_, err := uc.ListJobs(context.Background(), "", domain.MarketplaceQuery{})
		assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
		assert.ErrorIs(t, err, cause)
	})
}

func TestGetJob(t *testing.T) {
	market := new(MockMarketplaceRepo)
	uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), new(MockProfileRepo))
	market.On("GetByIDWithCompany", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	market.On("GetByIDWithCompany", mock.Anything, "broken").Return(nil, errors.New("timeout"))

	_, err := uc.GetJob(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	_, err = uc.GetJob(context.Background(), "broken")
	assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
}

func TestSaveJob(t *testing.T) {
	market := new(MockMarketplaceRepo)
	uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), new(MockProfileRepo))
	saved := &domain.SavedJob{ID: "s1", UserID: "u1", MarketplaceJobID: "j1"}
	market.On("SaveJob", mock.Anything, "u1", "j1").Return(saved, nil)
	market.On("SaveJob", mock.Anything, "u1", "nope").Return(nil, domain.ErrNotFound)

	first, err := uc.SaveJob(context.Background(), "u1", "j1")
	require.NoError(t, err)
	second, err := uc.SaveJob(context.Background(), "u1", "j1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = uc.SaveJob(context.Background(), "u1", "nope")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestApplyToJob(t *testing.T) {
	applyURL := "https://acme.example/jobs/1"
	job := marketJob("j1", "Go")
	job.Description = "Build things"
	job.ApplyURL = &applyURL

	t.Run("Should create application with mirrored pipeline job", func(t *testing.T) {
		market := new(MockMarketplaceRepo)
		apps := new(MockApplicationRepo)
		uc := usecase.NewMarketplaceUsecase(market, apps, new(MockProfileRepo))

		market.On("GetByIDWithCompany", mock.Anything, "j1").Return(&job, nil)
		apps.On("CreateWithPipelineJob", mock.Anything,
			mock.MatchedBy(func(a *domain.Application) bool {
				return a.UserID == "u1" && a.MarketplaceJobID == "j1" && a.Stage == domain.StageApplied
			}),
			mock.MatchedBy(func(p *domain.PipelineJob) bool {
				return p.UserID == "u1" && p.Company == "Acme" && p.Title == "Engineer j1" &&
					p.Stage == domain.StageApplied && p.URL != nil && *p.URL == applyURL &&
					p.DescriptionText != nil && *p.DescriptionText == "Build things"
			}),
		).Return(nil)

		app, err := uc.ApplyToJob(context.Background(), "u1", "j1")
		require.NoError(t, err)
		assert.Equal(t, domain.StageApplied, app.Stage)
		assert.Equal(t, "Acme", app.Job.Company.Name)
		apps.AssertExpectations(t)
	})

	t.Run("Should return conflict on duplicate apply", func(t *testing.T) {
		market := new(MockMarketplaceRepo)
		apps := new(MockApplicationRepo)
		uc := usecase.NewMarketplaceUsecase(market, apps, new(MockProfileRepo))

		market.On("GetByIDWithCompany", mock.Anything, "j1").Return(&job, nil)
		apps.On("CreateWithPipelineJob", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.ApplyToJob(context.Background(), "u1", "j1")
		assert.Equal(t, http.StatusConflict, appCode(t, err))
	})

	t.Run("Should not write for unknown job", func(t *testing.T) {
		market := new(MockMarketplaceRepo)
		apps := new(MockApplicationRepo)
		uc := usecase.NewMarketplaceUsecase(market, apps, new(MockProfileRepo))
		market.On("GetByIDWithCompany", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.ApplyToJob(context.Background(), "u1", "ghost")
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
		apps.AssertNotCalled(t, "CreateWithPipelineJob", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPipelineUsecase(t *testing.T) {
	t.Run("Should default stage to SAVED and force owner", func(t *testing.T) {
		repo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(repo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.PipelineJob) bool {
			return j.UserID == "u1" && j.Stage == domain.StageSaved
		})).Return(nil)

		job := &domain.PipelineJob{UserID: "someone-else", Company: "Acme", Title: "Dev"}
		require.NoError(t, uc.CreateJob(context.Background(), "u1", job))
		repo.AssertExpectations(t)
	})

	t.Run("Should reject unknown stage filter", func(t *testing.T) {
		uc := usecase.NewPipelineUsecase(new(MockPipelineRepo))
		_, err := uc.ListJobs(context.Background(), "u1", "GHOSTED")
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("Should patch only supplied fields", func(t *testing.T) {
		repo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(repo)
		notes := "old notes"
		existing := &domain.PipelineJob{ID: "p1", UserID: "u1", Company: "Acme", Title: "Dev", Stage: domain.StageApplied, Notes: &notes}
		repo.On("GetByID", mock.Anything, "u1", "p1").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		stage := domain.StageInterview
		updated, err := uc.UpdateJob(context.Background(), "u1", "p1", domain.PipelineJobPatch{Stage: &stage})
		require.NoError(t, err)
		assert.Equal(t, domain.StageInterview, updated.Stage)
		assert.Equal(t, "Acme", updated.Company)
		assert.Equal(t, "old notes", *updated.Notes)
	})

	t.Run("Should hide other users' jobs", func(t *testing.T) {
		repo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(repo)
		repo.On("GetByID", mock.Anything, "u2", "p1").Return(nil, domain.ErrNotFound)
		repo.On("Delete", mock.Anything, "u2", "p1").Return(domain.ErrNotFound)

		_, err := uc.GetJob(context.Background(), "u2", "p1")
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
		assert.Equal(t, http.StatusNotFound, appCode(t, uc.DeleteJob(context.Background(), "u2", "p1")))
	})

	t.Run("Should group board in stage order", func(t *testing.T) {
		repo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(repo)
		repo.On("ListByUser", mock.Anything, "u1", (*domain.Stage)(nil)).Return([]domain.PipelineJob{
			{ID: "a", Stage: domain.StageOffer},
			{ID: "b", Stage: domain.StageSaved},
			{ID: "c", Stage: domain.StageOffer},
		}, nil)

		board, err := uc.Board(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, board, len(domain.Stages))
		assert.Equal(t, domain.StageSaved, board[0].Stage)
		assert.Len(t, board[0].Jobs, 1)
		assert.Empty(t, board[1].Jobs)
		assert.Equal(t, domain.StageOffer, board[4].Stage)
		assert.Len(t, board[4].Jobs, 2)
	})
}

func TestProfileUsecase(t *testing.T) {
	t.Run("Should reject invalid fields before storage", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validation.New())

		_, err := uc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{
			Phone: strPtr("call me"),
			Links: []string{""},
		})
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should accept links as the resume parser returns them", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validation.New())
		links := []string{"linkedin.com/in/jane-doe", "github.com/janedoe", "https://jane.dev/work"}
		repo.On("Upsert", mock.Anything, "u1", mock.MatchedBy(func(u domain.ProfileUpdate) bool {
			return assert.ObjectsAreEqual(links, u.Links) && u.Projects[0].URL == "github.com/janedoe/kv"
		})).Return(&domain.UserProfile{UserID: "u1", Links: links}, nil)

		_, err := uc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{
			Links:    links,
			Projects: []domain.ProjectEntry{{Name: "kv", URL: "github.com/janedoe/kv"}},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should clean skills and pass omitted fields as nil", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validation.New())
		repo.On("Upsert", mock.Anything, "u1", mock.MatchedBy(func(u domain.ProfileUpdate) bool {
			return u.Headline != nil && *u.Headline == "Engineer" && u.FirstName == nil &&
				assert.ObjectsAreEqual([]string{"Go", "SQL"}, u.Skills) && u.Links == nil
		})).Return(&domain.UserProfile{UserID: "u1"}, nil)

		_, err := uc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{
			Headline: strPtr("Engineer"),
			Skills:   []string{" Go ", "go", "", "SQL"},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should return not found when profile missing", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validation.New())
		repo.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

		_, err := uc.GetProfile(context.Background(), "u1")
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})
}

// sliceMarket serves a fixed, already ordered result set with offset paging
type sliceMarket struct {
	domain.MarketplaceRepository
	jobs []domain.MarketplaceJobWithCompany
}

func (s *sliceMarket) Fetch(_ context.Context, f domain.MarketplaceFilter) ([]domain.MarketplaceJobWithCompany, error) {
	if f.Offset >= len(s.jobs) {
		return nil, nil
	}
	end := min(f.Offset+f.Limit, len(s.jobs))
	return append([]domain.MarketplaceJobWithCompany(nil), s.jobs[f.Offset:end]...), nil
}

func (s *sliceMarket) Count(context.Context, domain.MarketplaceFilter) (int64, error) {
	return int64(len(s.jobs)), nil
}

func TestMarketplacePagesCoverTotalOnce(t *testing.T) {
	market := &sliceMarket{}
	for i := 0; i < 23; i++ {
		market.jobs = append(market.jobs, domain.MarketplaceJobWithCompany{
			MarketplaceJob: domain.MarketplaceJob{ID: fmt.Sprintf("job-%02d", i)},
		})
	}
	uc := usecase.NewMarketplaceUsecase(market, new(MockApplicationRepo), new(MockProfileRepo))

	seen := map[string]bool{}
	first, err := uc.ListJobs(context.Background(), "", domain.MarketplaceQuery{Page: "1", Limit: "5"})
	require.NoError(t, err)
	require.Equal(t, 5, first.LastPage)

	for page := 1; page <= first.LastPage; page++ {
		res, err := uc.ListJobs(context.Background(), "", domain.MarketplaceQuery{Page: strconv.Itoa(page), Limit: "5"})
		require.NoError(t, err)
		assert.Equal(t, int64(23), res.Total)
		for _, j := range res.Jobs {
			assert.False(t, seen[j.ID], "job %s returned twice", j.ID)
			seen[j.ID] = true
		}
	}
	assert.Len(t, seen, 23)

	past, err := uc.ListJobs(context.Background(), "", domain.MarketplaceQuery{Page: "6", Limit: "5"})
	require.NoError(t, err)
	assert.Empty(t, past.Jobs)
	assert.Equal(t, int64(23), past.Total)
	assert.Equal(t, 5, past.LastPage)
}
