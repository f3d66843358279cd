package validation

import (
	"context"
	"regexp"
	"strings"
	"time"

	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single authority call when none is configured.
const DefaultTimeout = 2 * time.Second

var formats = map[services.CodeType]*regexp.Regexp{
	// 6 digit HS heading, optionally extended to 8 or 10 national digits.
	services.CodeTypeHS:       regexp.MustCompile(`^\d{6}(\d{2}){0,2}$`),
	services.CodeTypeTracking: regexp.MustCompile(`^[A-Z0-9]{8,40}$`),
}

// Normalize strips the separators people type into codes ("6109.10 00")
// and upper-cases the rest.
func Normalize(code string) string {
	return strings.ToUpper(strings.NewReplacer(".", "", " ", "", "-", "").Replace(strings.TrimSpace(code)))
}

// FormatIsValid runs the local format check only.
func FormatIsValid(codeType services.CodeType, code string) bool {
	re, ok := formats[codeType]
	if !ok {
		return false
	}
	return re.MatchString(Normalize(code))
}

// Gateway is the services.CodeValidator used by the rule engine. Codes with
// a bad format are rejected locally. Well-formed codes go to the authority
// under a timeout; when it fails the format result stands and the answer is
// marked as a fallback.
type Gateway struct {
	authority Authority
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGateway accepts a nil authority, in which case every well-formed code
// is answered by the fallback.
func NewGateway(authority Authority, timeout time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		authority: authority,
		timeout:   timeout,
		logger:    logger.With(zap.String("component", "validation_gateway")),
	}
}

func (g *Gateway) ValidateFormatAndAuthority(ctx context.Context, codeType services.CodeType, code string) services.CodeCheck {
	if !FormatIsValid(codeType, code) {
		return services.CodeCheck{Valid: false, Message: "malformed " + strings.ToLower(string(codeType))}
	}

	if g.authority == nil {
		return g.fallback(codeType, code, nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	check, err := g.authority.Check(callCtx, codeType, Normalize(code))
	if err != nil {
		return g.fallback(codeType, code, err)
	}
	check.UsedFallback = false
	return check
}

func (g *Gateway) fallback(codeType services.CodeType, code string, cause error) services.CodeCheck {
	metrics.ValidationFallbacksTotal.WithLabelValues(string(codeType)).Inc()
	if cause != nil {
		g.logger.Warn("code authority unavailable, using format check",
			zap.String("code_type", string(codeType)),
			zap.String("code", code),
			zap.Error(cause),
		)
	}
	return services.CodeCheck{Valid: true, UsedFallback: true, Message: "format check only"}
}
