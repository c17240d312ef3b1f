package resumeparser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"skillmatch-backend/internal/domain"
)

const scannedPDFCode = "scanned_pdf"

// maxReplyBytes bounds how much of a reply is read
const maxReplyBytes = 8 << 20

// ScannedPDFError means the file had no extractable text layer
type ScannedPDFError struct {
	Message string
}

func (e *ScannedPDFError) Error() string { return e.Message }

// UpstreamError is a non-2xx reply from the parsing service
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parser returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("parser returned %d", e.Status)
}

// IsClientError reports whether the service rejected the input itself
func (e *UpstreamError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// Client talks to the résumé parsing service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type errorReply struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  any    `json:"detail"`
}

// Parse uploads the file as multipart field "file" to /parse-resume
func (c *Client) Parse(ctx context.Context, filename, contentType string, data []byte) (*domain.ParsedResume, error) {
	body, formType, err := buildForm(filename, contentType, data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse-resume", body)
	if err != nil {
		return nil, fmt.Errorf("build parser request: %w", err)
	}
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call parser: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read parser reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var reply errorReply
		_ = json.Unmarshal(raw, &reply)
		return nil, &UpstreamError{Status: resp.StatusCode, Detail: detailString(reply.Detail)}
	}

	var reply errorReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decode parser reply: %w", err)
	}
	if reply.Error == scannedPDFCode {
		msg := reply.Message
		if msg == "" {
			msg = "This appears to be a scanned PDF with no extractable text. Please upload a text-based PDF."
		}
		return nil, &ScannedPDFError{Message: msg}
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("parser error %q: %s", reply.Error, reply.Message)
	}

	var parsed domain.ParsedResume
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode parsed resume: %w", err)
	}
	parsed.Raw = json.RawMessage(raw)
	return &parsed, nil
}

func buildForm(filename, contentType string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if contentType == "" {
		contentType = "application/pdf"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("build multipart: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("build multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// FastAPI sends detail as a string or as a list of validation objects
func detailString(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// AsScanned unwraps a ScannedPDFError
func AsScanned(err error) (*ScannedPDFError, bool) {
	var target *ScannedPDFError
	ok := errors.As(err, &target)
	return target, ok
}

// AsUpstream unwraps an UpstreamError
func AsUpstream(err error) (*UpstreamError, bool) {
	var target *UpstreamError
	ok := errors.As(err, &target)
	return target, ok
}
