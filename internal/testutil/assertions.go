package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// ErrorBody is the shape the centralized responder produces for failures
type ErrorBody struct {
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

// AssertErrorResponse verifies status code and error message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var body ErrorBody
	AssertJSONResponse(t, resp, &body)
	assert.Contains(t, body.Message, expectedMessage, "error message mismatch")
	return body
}

// CookieValue extracts a named cookie from a response, failing if absent
func CookieValue(t *testing.T, resp *http.Response, name string) string {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	t.Fatalf("cookie %q not set on response", name)
	return ""
}
