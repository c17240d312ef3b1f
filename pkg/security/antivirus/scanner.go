package antivirus

import (
	"context"

	"skillmatch-backend/internal/domain"
)

// NoOpScanner reports every file as clean. Used when no clamd address is configured.
type NoOpScanner struct{}

var _ domain.MalwareScanner = NoOpScanner{}

func (NoOpScanner) Scan(ctx context.Context, data []byte) (domain.ScanVerdict, error) {
	return domain.ScanVerdict{}, nil
}

// New returns a clamd scanner for address, or a NoOpScanner when address is empty
func New(address string, opts ...Option) domain.MalwareScanner {
	if address == "" {
		return NoOpScanner{}
	}
	return NewClamAVScanner(address, opts...)
}
