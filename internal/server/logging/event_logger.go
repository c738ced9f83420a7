package logging

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventLoggingConfig holds sampling and filtering configuration.
type EventLoggingConfig struct {
	SuccessSampleRate float64 `env:"LOG_SUCCESS_SAMPLE_RATE" envDefault:"1.0"`
	ExcludePaths      string  `env:"LOG_EXCLUDE_PATHS" envDefault:"/metrics"`
	ErrorOnlyPaths    string  `env:"LOG_ERROR_ONLY_PATHS" envDefault:"/healthz"`
	RedactPatterns    string  `env:"LOG_REDACT_PATTERNS" envDefault:"password,token,secret,authorization,chat_id"`
}

// ParsedEventLoggingConfig is the parsed version of EventLoggingConfig.
type ParsedEventLoggingConfig struct {
	SuccessSampleRate float64
	ExcludePaths      map[string]bool
	ErrorOnlyPaths    map[string]bool
	RedactRegex       *regexp.Regexp
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseEventLoggingConfig parses the config into lookup tables and a
// case-insensitive redaction pattern.
func ParseEventLoggingConfig(cfg *EventLoggingConfig) *ParsedEventLoggingConfig {
	if cfg == nil {
		cfg = DefaultEventLoggingConfig()
	}
	parsed := &ParsedEventLoggingConfig{
		SuccessSampleRate: cfg.SuccessSampleRate,
		ExcludePaths:      make(map[string]bool),
		ErrorOnlyPaths:    make(map[string]bool),
	}
	for _, p := range splitList(cfg.ExcludePaths) {
		parsed.ExcludePaths[p] = true
	}
	for _, p := range splitList(cfg.ErrorOnlyPaths) {
		parsed.ErrorOnlyPaths[p] = true
	}

	var regexParts []string
	for _, p := range splitList(cfg.RedactPatterns) {
		regexParts = append(regexParts, regexp.QuoteMeta(p))
	}
	if len(regexParts) > 0 {
		parsed.RedactRegex = regexp.MustCompile("(?i)(" + strings.Join(regexParts, "|") + ")")
	}
	return parsed
}

func DefaultEventLoggingConfig() *EventLoggingConfig {
	return &EventLoggingConfig{
		SuccessSampleRate: 1.0,
		ExcludePaths:      "/metrics",
		ErrorOnlyPaths:    "/healthz",
		RedactPatterns:    "password,token,secret,authorization,chat_id",
	}
}

const redactedValue = "***"

// RedactFields replaces the value of every field whose key matches re.
func RedactFields(re *regexp.Regexp, fields ...zap.Field) []zap.Field {
	if re == nil {
		return fields
	}
	redacted := make([]zap.Field, len(fields))
	for i, f := range fields {
		if re.MatchString(f.Key) {
			redacted[i] = zap.String(f.Key, redactedValue)
		} else {
			redacted[i] = f
		}
	}
	return redacted
}

// Log logs an event with the request-scoped logger. Errors and warnings are
// always logged; info and debug honour the request's sampling decision.
func Log(ctx context.Context, base *zap.Logger, level zapcore.Level, message string, fields ...zap.Field) {
	if level < zapcore.WarnLevel && !ShouldLog(ctx) {
		return
	}
	L(ctx, base).Log(level, message, fields...)
}

// HashRequestIDToFloat returns a deterministic float between 0 and 1 based on request ID.
// The same request id always gets the same value.
func HashRequestIDToFloat(requestID string) float64 {
	h := fnv.New64a()
	h.Write([]byte(requestID))
	return float64(h.Sum64()) / float64(^uint64(0))
}

func EventLevelFromStatusCode(statusCode int) zapcore.Level {
	switch {
	case statusCode >= 500:
		return zapcore.ErrorLevel
	case statusCode >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
