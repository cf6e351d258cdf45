package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"tvet-connect-backend/pkg/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventAccessDenied       EventType = "access_denied"
	EventBlockCreated       EventType = "block_created"
)

// Event is one security-relevant occurrence. SubjectValue must already be masked.
type Event struct {
	Type         EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]interface{}
}

// Logger writes security events to the shared zap logger under a "security" name.
type Logger struct {
	zapLogger *zap.Logger
}

// NewLogger binds to logger.Log; call after logger.Init.
func NewLogger() *Logger {
	return &Logger{zapLogger: logger.Log.Named("security")}
}

func levelFor(t EventType) zapcore.Level {
	switch t {
	case EventLoginSuccess:
		return zapcore.InfoLevel
	case EventBlockCreated, EventLoginBlocked:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (l *Logger) Log(_ context.Context, e Event) {
	if l == nil {
		return
	}
	fields := []zap.Field{zap.String("event", string(e.Type))}
	if e.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", e.SubjectType), zap.String("subject_value", e.SubjectValue))
	}
	if e.IP != "" {
		fields = append(fields, zap.String("ip", e.IP))
	}
	if e.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", e.UserAgent))
	}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Any("details", e.Details))
	}
	l.zapLogger.Log(levelFor(e.Type), string(e.Type), fields...)
}

func (l *Logger) LoginFailed(ctx context.Context, email, ip, requestID, reason string) {
	l.Log(ctx, Event{
		Type:         EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (l *Logger) LoginBlocked(ctx context.Context, email, ip, requestID string) {
	l.Log(ctx, Event{
		Type:         EventLoginBlocked,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
	})
}

func (l *Logger) RateLimitTriggered(ctx context.Context, ip, userAgent, requestID, route string) {
	l.Log(ctx, Event{
		Type:         EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"route": route},
	})
}

func (l *Logger) AccessDenied(ctx context.Context, userID, route, requestID string) {
	l.Log(ctx, Event{
		Type:         EventAccessDenied,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
		Details:      map[string]interface{}{"route": route},
	})
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue returns a short SHA256 prefix so ids can be correlated without being logged.
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
