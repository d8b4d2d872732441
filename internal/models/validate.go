package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the largest input, in characters, the client accepts
// before submitting a request.
const MaxTextLength = 10000

// ValidationError reports a request that failed the client-side
// preconditions. It never reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateRequest checks the client-side preconditions on a detection
// request: non-blank text and length within MaxTextLength. All deeper
// validation is the server's job.
func ValidateRequest(req DetectionRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be blank"}
	}
	if n := utf8.RuneCountInString(req.Text); n > MaxTextLength {
		return &ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("length %d exceeds limit of %d characters", n, MaxTextLength),
		}
	}
	return nil
}
