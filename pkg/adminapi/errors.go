package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents an error response from the admin REST API.
type APIError struct {
	// StatusCode is the HTTP status code of the failed request.
	StatusCode int

	// Message is the server-provided error message, or the HTTP status text
	// when the body carried no recognizable error payload.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("admin api error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether the error is an APIError with status 409,
// which the server returns when an entity with the same name already exists.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusConflict
}

// parseErrorResponse converts a non-2xx response body into a typed *APIError.
// Keycloak uses both {"error": ...} and {"errorMessage": ...} payloads
// depending on the endpoint.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorMessage     string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.ErrorMessage != "":
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.ErrorMessage}
		case errResp.ErrorDescription != "":
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("%s: %s", errResp.Error, errResp.ErrorDescription)}
		case errResp.Error != "":
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
