package llm

import (
	"errors"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsQuotaError reports whether an upstream error is a rate/quota rejection
// rather than a general transport failure, so the handler can answer 429
// with a Retry-After instead of a generic upstream error.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests
	}

	// gRPC ResourceExhausted from the Gemini SDK.
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}

	// String matching as a fallback for wrapped errors.
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
