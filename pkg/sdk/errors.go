package sdk

import "fmt"

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("listdex: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("listdex: http %d: %s", e.StatusCode, e.Message)
}
