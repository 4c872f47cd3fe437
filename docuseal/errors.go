// ABOUTME: Typed error for signing API failures
// ABOUTME: Carries the HTTP status and raw body for diagnostics, never swallowed
package docuseal

import "fmt"

// APIError wraps any failure talking to the signing service. A failed
// submission has business consequences, so callers always see this.
type APIError struct {
	StatusCode int
	Body       string
	Op         string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("docuseal %s failed: status %d: %s", e.Op, e.StatusCode, body)
}
