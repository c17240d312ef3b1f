package security

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AuditEvent names a security-relevant event
type AuditEvent string

const (
	EventLoginFailed    AuditEvent = "login_failed"
	EventLoginBlocked   AuditEvent = "login_blocked"
	EventLoginSucceeded AuditEvent = "login_succeeded"
	EventUploadRejected AuditEvent = "upload_rejected"
	EventMalwareFound   AuditEvent = "malware_found"
)

// AuditLogger writes security events as JSON lines, separate from the
// request log. A nil *AuditLogger discards everything.
type AuditLogger struct {
	log *zap.Logger
}

func NewAuditLogger(service, env string) *AuditLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return &AuditLogger{log: l.With(zap.String("service", service), zap.String("env", env))}
}

// NewNopAuditLogger is for tests
func NewNopAuditLogger() *AuditLogger {
	return &AuditLogger{log: zap.NewNop()}
}

func level(event AuditEvent) zapcore.Level {
	switch event {
	case EventLoginSucceeded:
		return zapcore.InfoLevel
	case EventLoginBlocked, EventMalwareFound:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (a *AuditLogger) Record(event AuditEvent, fields ...zap.Field) {
	if a == nil {
		return
	}
	a.log.Log(level(event), string(event), append(fields, zap.String("event", string(event)))...)
}

func (a *AuditLogger) LoginFailed(email, ip string, attempts int) {
	a.Record(EventLoginFailed, zap.String("subject", MaskEmail(email)), zap.String("ip", ip), zap.Int("attempts", attempts))
}

func (a *AuditLogger) LoginBlocked(email, ip string) {
	a.Record(EventLoginBlocked, zap.String("subject", MaskEmail(email)), zap.String("ip", ip))
}

func (a *AuditLogger) UploadRejected(userID, reason string) {
	a.Record(EventUploadRejected, zap.String("user_id", userID), zap.String("reason", reason))
}

func (a *AuditLogger) MalwareFound(userID, threat string) {
	a.Record(EventMalwareFound, zap.String("user_id", userID), zap.String("threat", threat))
}

func (a *AuditLogger) Sync() error {
	if a == nil {
		return nil
	}
	return a.log.Sync()
}

// MaskEmail keeps the first character and the domain: "a***@example.com"
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
