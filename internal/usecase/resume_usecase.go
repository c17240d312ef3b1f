package usecase

import (
	"context"
	"errors"
	"time"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"
	"skillmatch-backend/pkg/logger"
	"skillmatch-backend/pkg/resumeparser"
	"skillmatch-backend/pkg/security"
	"skillmatch-backend/pkg/storage"
)

const parseFailedMessage = "Failed to parse resume. Please try again."

type resumeUsecase struct {
	repo    domain.ResumeRepository
	files   domain.FileStorage
	parser  domain.ResumeParser
	scanner domain.MalwareScanner
	rules   security.PDFRules
	audit   *security.AuditLogger
	nowFunc func() time.Time
}

func NewResumeUsecase(
	repo domain.ResumeRepository,
	files domain.FileStorage,
	parser domain.ResumeParser,
	scanner domain.MalwareScanner,
	rules security.PDFRules,
	audit *security.AuditLogger,
) domain.ResumeUsecase {
	return &resumeUsecase{
		repo:    repo,
		files:   files,
		parser:  parser,
		scanner: scanner,
		rules:   rules,
		audit:   audit,
		nowFunc: time.Now,
	}
}

// validationError maps a PDF validation failure to a 400
func validationError(err error) error {
	switch {
	case errors.Is(err, security.ErrNoFile):
		return apperror.BadRequest("No file uploaded")
	case errors.Is(err, security.ErrNotPDF):
		return apperror.BadRequest("Only PDF files are supported")
	case errors.Is(err, security.ErrContentMismatch):
		return apperror.BadRequest("File content is not a valid PDF")
	case errors.Is(err, security.ErrFileTooLarge):
		return apperror.BadRequest("File is too large")
	case errors.Is(err, security.ErrTooManyPages):
		return apperror.BadRequest("PDF has too many pages")
	default:
		return apperror.BadRequest("Invalid PDF file")
	}
}

// store validates and uploads the file, returning its key and signed URL
func (u *resumeUsecase) store(ctx context.Context, userID string, upload domain.ResumeUpload) (string, string, error) {
	if _, err := security.ValidatePDF(upload.Filename, upload.Data, u.rules); err != nil {
		u.audit.UploadRejected(userID, err.Error())
		return "", "", validationError(err)
	}

	verdict, err := u.scanner.Scan(ctx, upload.Data)
	if err != nil {
		logger.Log.Error("Malware scan failed", "user_id", userID, "error", err)
		return "", "", apperror.Unavailable("File scanning is unavailable. Please try again later.", err)
	}
	if verdict.Infected {
		u.audit.MalwareFound(userID, verdict.Threat)
		return "", "", apperror.BadRequest("File failed security scan")
	}

	key := storage.ResumeKey(userID, upload.Filename, u.nowFunc())
	if err := u.files.Upload(ctx, key, upload.Data, "application/pdf"); err != nil {
		return "", "", apperror.Internal(err)
	}
	url, err := u.files.SignedURL(ctx, key)
	if err != nil {
		return "", "", apperror.Internal(err)
	}
	return key, url, nil
}

func (u *resumeUsecase) ParseResume(ctx context.Context, userID string, upload domain.ResumeUpload) (*domain.ResumeReview, error) {
	key, url, err := u.store(ctx, userID, upload)
	if err != nil {
		return nil, err
	}

	parsed, err := u.parser.Parse(ctx, upload.Filename, "application/pdf", upload.Data)
	if err != nil {
		if scanned, ok := resumeparser.AsScanned(err); ok {
			return nil, apperror.BadRequest(scanned.Message)
		}
		if up, ok := resumeparser.AsUpstream(err); ok && up.IsClientError() {
			detail := up.Detail
			if detail == "" {
				detail = "Invalid PDF file"
			}
			return nil, apperror.BadRequest(detail)
		}
		logger.Log.Error("Resume parsing failed", "user_id", userID, "file_key", key, "error", err)
		return nil, apperror.BadGateway(parseFailedMessage, err)
	}

	resume := &domain.Resume{
		UserID:     userID,
		FileKey:    key,
		FileURL:    url,
		ParsedJSON: parsed.Raw,
		CreatedAt:  u.nowFunc().UTC(),
	}
	if parsed.ExtractedText != "" {
		text := parsed.ExtractedText
		resume.ExtractedText = &text
	}
	if err := u.repo.Create(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ResumeReview{
		ParsedResume: *parsed,
		ResumeID:     resume.ID,
		FileURL:      url,
	}, nil
}

func (u *resumeUsecase) UploadResume(ctx context.Context, userID string, upload domain.ResumeUpload) (*domain.Resume, error) {
	key, url, err := u.store(ctx, userID, upload)
	if err != nil {
		return nil, err
	}

	resume := &domain.Resume{
		UserID:    userID,
		FileKey:   key,
		FileURL:   url,
		CreatedAt: u.nowFunc().UTC(),
	}
	if err := u.repo.Create(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}
	return resume, nil
}

func (u *resumeUsecase) ListResumes(ctx context.Context, userID string) ([]domain.Resume, error) {
	resumes, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}
