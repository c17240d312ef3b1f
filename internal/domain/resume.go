package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Resume is one uploaded file; rows accumulate per user
type Resume struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	FileKey       string          `json:"file_key"`
	FileURL       string          `json:"file_url"`
	ExtractedText *string         `json:"extracted_text,omitempty"`
	ParsedJSON    json.RawMessage `json:"parsed_json,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ResumeUpload is a file received from a client
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type RawEntry struct {
	Raw string `json:"raw"`
}

// ParsedResume mirrors the parsing service's reply. Field names follow the
// service's wire format.
type ParsedResume struct {
	FirstName     *string            `json:"firstName"`
	LastName      *string            `json:"lastName"`
	Username      *string            `json:"username"`
	Email         *string            `json:"email"`
	Phone         *string            `json:"phone"`
	Location      *string            `json:"location"`
	Links         []string           `json:"links"`
	Headline      *string            `json:"headline"`
	Summary       *string            `json:"summary"`
	Skills        []string           `json:"skills"`
	Experience    []RawEntry         `json:"experience"`
	Education     []RawEntry         `json:"education"`
	Projects      []RawEntry         `json:"projects"`
	ExtractedText string             `json:"extractedText"`
	Confidence    map[string]float64 `json:"confidence"`

	// Raw is the untouched reply body, persisted as-is
	Raw json.RawMessage `json:"-"`
}

// ResumeReview is returned after parsing so the user can edit fields
// before committing them with a profile update.
type ResumeReview struct {
	ParsedResume
	ResumeID string `json:"resumeId"`
	FileURL  string `json:"fileUrl"`
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
}

// FileStorage stores resume bytes and hands out time-limited URLs
type FileStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	SignedURL(ctx context.Context, key string) (string, error)
}

// ScanVerdict is the outcome of a malware scan
type ScanVerdict struct {
	Infected bool
	Threat   string
}

// MalwareScanner inspects uploaded bytes before they are stored.
// An error means the file could not be scanned.
type MalwareScanner interface {
	Scan(ctx context.Context, data []byte) (ScanVerdict, error)
}

// ResumeParser is the external parsing collaborator
type ResumeParser interface {
	Parse(ctx context.Context, filename, contentType string, data []byte) (*ParsedResume, error)
}

type ResumeUsecase interface {
	ParseResume(ctx context.Context, userID string, upload ResumeUpload) (*ResumeReview, error)
	UploadResume(ctx context.Context, userID string, upload ResumeUpload) (*Resume, error)
	ListResumes(ctx context.Context, userID string) ([]Resume, error)
}
