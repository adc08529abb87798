package adminapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	resp := func(status int) *http.Response {
		return &http.Response{StatusCode: status}
	}

	t.Run("2xx is not an error", func(t *testing.T) {
		require.NoError(t, parseErrorResponse(resp(http.StatusOK), nil))
		require.NoError(t, parseErrorResponse(resp(http.StatusCreated), []byte("{}")))
	})

	t.Run("errorMessage payload", func(t *testing.T) {
		err := parseErrorResponse(resp(http.StatusConflict), []byte(`{"errorMessage":"User exists with same username"}`))
		require.EqualError(t, err, "admin api error (status 409): User exists with same username")
		require.True(t, IsConflict(err))
	})

	t.Run("oauth error payload", func(t *testing.T) {
		err := parseErrorResponse(resp(http.StatusUnauthorized),
			[]byte(`{"error":"invalid_grant","error_description":"Invalid user credentials"}`))
		require.EqualError(t, err, "admin api error (status 401): invalid_grant: Invalid user credentials")
	})

	t.Run("bare error payload", func(t *testing.T) {
		err := parseErrorResponse(resp(http.StatusForbidden), []byte(`{"error":"unknown_error"}`))
		require.EqualError(t, err, "admin api error (status 403): unknown_error")
	})

	t.Run("unparseable body falls back to status text", func(t *testing.T) {
		err := parseErrorResponse(resp(http.StatusNotFound), []byte("<html>nope</html>"))
		require.EqualError(t, err, "admin api error (status 404): Not Found")
		require.True(t, IsNotFound(err))
	})
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	require.False(t, IsNotFound(nil))
	require.False(t, IsConflict(nil))
	require.False(t, IsNotFound(&APIError{StatusCode: http.StatusConflict}))
	require.True(t, IsNotFound(&APIError{StatusCode: http.StatusNotFound}))
}
