package v1

import (
	"errors"
	"io"
	"net/http"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// room for multipart boundaries and headers around the file part
const multipartOverhead = 1 << 20

// readUpload reads the "file" form field. A missing field yields an empty
// upload, which the usecase rejects as "No file uploaded".
func readUpload(c *gin.Context, maxBytes int64) (domain.ResumeUpload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ResumeUpload{}, apperror.BadRequest("File is too large")
		}
		return domain.ResumeUpload{}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return domain.ResumeUpload{}, apperror.BadRequest("Could not read uploaded file")
	}
	defer f.Close()

	// one extra byte lets the size check see oversized files
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return domain.ResumeUpload{}, apperror.BadRequest("Could not read uploaded file")
	}

	return domain.ResumeUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
