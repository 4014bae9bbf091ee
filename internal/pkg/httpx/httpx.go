package httpx

import (
	"errors"
)

// HTTPStatusCoder is implemented by typed provider errors that carry the
// upstream HTTP status.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusCode extracts the upstream HTTP status from err, or 0.
func StatusCode(err error) int {
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}

// IsAuthStatus reports whether code signals a credential problem.
func IsAuthStatus(code int) bool {
	return code == 401 || code == 403
}

// IsRateLimitStatus reports whether code signals provider throttling.
func IsRateLimitStatus(code int) bool {
	return code == 429
}
