package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"skillmatch-backend/internal/domain"
)

// clamd rejects chunks above its StreamMaxLength; 1 MiB stays well below
const chunkSize = 1 << 20

var ErrScanFailed = errors.New("antivirus: scan failed")

// ClamAVScanner streams files to a clamd daemon with the INSTREAM command
type ClamAVScanner struct {
	network string
	address string
	timeout time.Duration
}

var _ domain.MalwareScanner = (*ClamAVScanner)(nil)

type Option func(*ClamAVScanner)

// WithTimeout bounds the whole scan including the dial
func WithTimeout(d time.Duration) Option {
	return func(s *ClamAVScanner) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewClamAVScanner accepts "host:port" or a unix socket path
func NewClamAVScanner(address string, opts ...Option) *ClamAVScanner {
	s := &ClamAVScanner{network: "tcp", address: address, timeout: 30 * time.Second}
	if strings.HasPrefix(address, "/") {
		s.network = "unix"
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClamAVScanner) dial(ctx context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, s.network, s.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(s.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping checks that clamd answers PONG
func (s *ClamAVScanner) Ping(ctx context.Context) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("%w: unexpected reply %q", ErrScanFailed, reply)
	}
	return nil
}

// Scan sends data in length-prefixed chunks followed by a zero-length terminator.
// Replies: "stream: OK", "stream: <threat> FOUND" or "<message> ERROR".
func (s *ClamAVScanner) Scan(ctx context.Context, data []byte) (domain.ScanVerdict, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return domain.ScanVerdict{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	defer conn.Close()

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString("zINSTREAM\x00"); err != nil {
		return domain.ScanVerdict{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	var size [4]byte
	for off := 0; off < len(data); off += chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		binary.BigEndian.PutUint32(size[:], uint32(end-off))
		if _, err := w.Write(size[:]); err != nil {
			return domain.ScanVerdict{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
		}
		if _, err := w.Write(data[off:end]); err != nil {
			return domain.ScanVerdict{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
		}
	}
	binary.BigEndian.PutUint32(size[:], 0)
	if _, err := w.Write(size[:]); err != nil {
		return domain.ScanVerdict{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	if err := w.Flush(); err != nil {
		return domain.ScanVerdict{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	reply, err := readReply(conn)
	if err != nil {
		return domain.ScanVerdict{}, err
	}
	return parseReply(reply)
}

func readReply(conn net.Conn) (string, error) {
	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return "", fmt.Errorf("%w: reading reply: %v", ErrScanFailed, err)
	}
	return strings.TrimSpace(strings.TrimRight(reply, "\x00")), nil
}

func parseReply(reply string) (domain.ScanVerdict, error) {
	body := reply
	if i := strings.Index(reply, ":"); i >= 0 {
		body = strings.TrimSpace(reply[i+1:])
	}

	switch {
	case body == "OK":
		return domain.ScanVerdict{}, nil
	case strings.HasSuffix(body, " FOUND"):
		return domain.ScanVerdict{Infected: true, Threat: strings.TrimSuffix(body, " FOUND")}, nil
	default:
		return domain.ScanVerdict{}, fmt.Errorf("%w: %s", ErrScanFailed, reply)
	}
}
