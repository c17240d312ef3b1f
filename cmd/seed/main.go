package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"skillmatch-backend/config"
	"skillmatch-backend/internal/domain"
	"skillmatch-backend/internal/repository/postgres"
	"skillmatch-backend/pkg/database"
	"skillmatch-backend/pkg/logger"

	"github.com/google/uuid"
)

const jobCount = 180

var companies = []struct{ name, website string }{
	{"Google", "https://google.com"},
	{"Meta", "https://meta.com"},
	{"Stripe", "https://stripe.com"},
	{"Notion", "https://notion.so"},
	{"Amazon", "https://amazon.com"},
	{"Datadog", "https://datadoghq.com"},
	{"Vercel", "https://vercel.com"},
	{"Airbnb", "https://airbnb.com"},
	{"Netflix", "https://netflix.com"},
	{"Spotify", "https://spotify.com"},
}

var titles = []string{
	"Software Engineer", "Frontend Developer", "Backend Engineer", "Fullstack Developer", "SRE Engineer",
	"DevOps Specialist", "Machine Learning Engineer", "Data Scientist", "Product Manager", "UI/UX Designer",
}

var skills = []string{
	"React", "Next.js", "Node.js", "TypeScript", "Python", "Go", "Rust", "PostgreSQL", "Redis", "Docker",
	"Kubernetes", "AWS", "GCP", "Azure", "TensorFlow", "PyTorch", "Swift", "Kotlin", "Java", "Spring Boot",
}

var locations = []string{
	"Mountain View, CA", "New York, NY", "Seattle, WA", "San Francisco, CA", "Austin, TX", "Remote",
}

var descriptions = []string{
	"We are looking for a highly motivated engineer to join our core team. You will build scalable systems on modern infrastructure. Experience with distributed systems and cloud architecture is a plus.",
	"Join our frontend team to build intuitive user interfaces. You will work closely with designers and product managers. Proficiency in React and modern CSS is required.",
	"As a backend engineer you will design and implement robust APIs and manage complex data models. We value clean code and strong problem-solving skills.",
	"We are seeking a fullstack developer who can bridge frontend and backend. You will work on all parts of our stack and contribute to architectural decisions.",
	"Help us build the next generation of our product. You will be involved in the entire software development lifecycle.",
}

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

func randomJob(company domain.Company, now time.Time) domain.MarketplaceJob {
	title := pick(titles)
	if rand.Float64() > 0.7 {
		title = fmt.Sprintf("%s (L%d)", title, rand.Intn(3)+3)
	}
	location := pick(locations)

	// 3 to 6 distinct skills
	shuffled := append([]string(nil), skills...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	jobSkills := shuffled[:rand.Intn(4)+3]

	var applyURL *string
	if company.Website != nil {
		u := *company.Website + "/careers"
		applyURL = &u
	}

	return domain.MarketplaceJob{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		Title:       title,
		Location:    location,
		Remote:      location == "Remote",
		Description: pick(descriptions),
		Skills:      jobSkills,
		Level:       pick(domain.JobLevels),
		Status:      domain.JobStatusOpen,
		ApplyURL:    applyURL,
		PostedAt:    now.Add(-time.Duration(rand.Intn(30*24*60)) * time.Minute),
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init()

	dbPool, err := database.Connect(context.Background(), cfg.DBUrl, database.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	companyRepo := postgres.NewCompanyRepository(dbPool)
	marketRepo := postgres.NewMarketplaceRepository(dbPool)

	logger.Log.Info("Seeding marketplace")

	for _, c := range companies {
		website := c.website
		logo := "https://logo.clearbit.com/" + website[len("https://"):]
		description := c.name + " is a global leader in its industry, focused on innovation and excellence."
		company := &domain.Company{Name: c.name, Website: &website, LogoURL: &logo, Description: &description}
		if err := companyRepo.UpsertByName(ctx, company); err != nil {
			logger.Log.Error("Failed to upsert company", "company", c.name, "error", err)
			os.Exit(1)
		}
	}

	stored, err := companyRepo.List(ctx)
	if err != nil || len(stored) == 0 {
		logger.Log.Error("No companies available", "error", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	jobs := make([]domain.MarketplaceJob, 0, jobCount)
	for i := 0; i < jobCount; i++ {
		jobs = append(jobs, randomJob(pick(stored), now))
	}

	if err := marketRepo.CreateBatch(ctx, jobs); err != nil {
		logger.Log.Error("Failed to insert jobs", "error", err)
		os.Exit(1)
	}

	logger.Log.Info("Seeding completed", "companies", len(stored), "jobs", len(jobs))
}
