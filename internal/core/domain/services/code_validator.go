package services

import "context"

// CodeType names the kind of code sent to the validation gateway.
type CodeType string

const (
	CodeTypeHS       CodeType = "HS_CODE"
	CodeTypeTracking CodeType = "TRACKING_NUMBER"
)

// CodeCheck is the answer of the validation gateway.
type CodeCheck struct {
	Valid bool
	// UsedFallback is set when the authority could not be reached and only
	// the local format check ran.
	UsedFallback bool
	Message      string
}

// CodeValidator checks customs and tracking codes against an external
// authority. Implementations bound every call with a timeout and turn
// transport failures into a fallback result; they never return an error.
type CodeValidator interface {
	ValidateFormatAndAuthority(ctx context.Context, codeType CodeType, code string) CodeCheck
}
