package adminapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// EnsureCreated verifies that a create call returned 201 Created. The
// typeAndName argument (e.g. "user john") is used in the error message.
func EnsureCreated(typeAndName string, resp *http.Response) error {
	if typeAndName == "" {
		return fmt.Errorf("typeAndName is empty")
	}
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("Creating %s failed with: #%d / %s",
			typeAndName, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}

// ExtractID returns the identifier the server assigned to a newly created
// entity, taken from the last path segment of the Location header. Returns
// an empty string when the response carries no Location.
func ExtractID(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	location, err := resp.Location()
	if err != nil || location == nil {
		return ""
	}
	path := location.Path
	return path[strings.LastIndex(path, "/")+1:]
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
