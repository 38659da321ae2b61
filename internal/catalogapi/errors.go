package catalogapi

import "fmt"

// APIError is a non-2xx response or a body with success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: status %d", e.Status)
	}
	return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) StatusCode() int { return e.Status }
