package resumeparser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParserServer(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse-resume", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		file, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer file.Close()
			assert.Equal(t, "cv.pdf", header.Filename)
			content, _ := io.ReadAll(file)
			assert.Equal(t, "%PDF-1.4 test", string(content))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseSuccess(t *testing.T) {
	reply := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","skills":["Go","SQL"],
		"experience":[{"raw":"Engineer at X"}],"extractedText":"Ada Lovelace ...","confidence":{"name":0.9}}`
	srv := newParserServer(t, http.StatusOK, reply)

	parsed, err := NewClient(srv.URL+"/", time.Second).Parse(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, err)

	require.NotNil(t, parsed.FirstName)
	assert.Equal(t, "Ada", *parsed.FirstName)
	assert.Equal(t, []string{"Go", "SQL"}, parsed.Skills)
	require.Len(t, parsed.Experience, 1)
	assert.Equal(t, "Engineer at X", parsed.Experience[0].Raw)
	assert.Equal(t, "Ada Lovelace ...", parsed.ExtractedText)
	assert.InDelta(t, 0.9, parsed.Confidence["name"], 0.0001)
	assert.JSONEq(t, reply, string(parsed.Raw))
}

func TestParseScannedPDF(t *testing.T) {
	srv := newParserServer(t, http.StatusOK, `{"error":"scanned_pdf","message":"No text layer"}`)

	_, err := NewClient(srv.URL, time.Second).Parse(context.Background(), "cv.pdf", "", []byte("%PDF-1.4 test"))
	scanned, ok := AsScanned(err)
	require.True(t, ok)
	assert.Equal(t, "No text layer", scanned.Message)
}

func TestParseClientErrorKeepsDetail(t *testing.T) {
	srv := newParserServer(t, http.StatusBadRequest, `{"detail":"Only PDF files are supported"}`)

	_, err := NewClient(srv.URL, time.Second).Parse(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	up, ok := AsUpstream(err)
	require.True(t, ok)
	assert.True(t, up.IsClientError())
	assert.Equal(t, "Only PDF files are supported", up.Detail)
}

func TestParseServerError(t *testing.T) {
	srv := newParserServer(t, http.StatusInternalServerError, `oops`)

	_, err := NewClient(srv.URL, time.Second).Parse(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	up, ok := AsUpstream(err)
	require.True(t, ok)
	assert.False(t, up.IsClientError())
	assert.Empty(t, up.Detail)
}

func TestParseUnreachable(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", 200*time.Millisecond).Parse(context.Background(), "cv.pdf", "", []byte("x"))
	require.Error(t, err)
	_, ok := AsUpstream(err)
	assert.False(t, ok)
}
