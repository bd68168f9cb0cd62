package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Aayush1011/poker-planning-backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

// apiClient drives the HTTP API as one authenticated user: bearer token
// in the header, fingerprint and refresh cookies from login.
type apiClient struct {
	t       *testing.T
	ts      *testutil.TestServer
	token   string
	cookies []*http.Cookie
	userID  uint
}

// loginAs creates a user directly in the database and logs in through the
// API so the client holds a real token and cookie pair.
func loginAs(t *testing.T, ts *testutil.TestServer) *apiClient {
	t.Helper()

	user, rawPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	resp := doJSON(t, ts, http.MethodPost, "/login", map[string]string{
		"email":    user.Email,
		"password": rawPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed during test setup")

	var body struct {
		Token  string `json:"token"`
		UserID uint   `json:"userId"`
	}
	testutil.AssertJSONResponse(t, resp, &body)

	return &apiClient{
		t:       t,
		ts:      ts,
		token:   body.Token,
		cookies: resp.Cookies(),
		userID:  body.UserID,
	}
}

func (c *apiClient) do(method, path string, payload interface{}) *http.Response {
	c.t.Helper()

	req := newJSONRequest(c.t, c.ts, method, path, payload)
	req.Header.Set("Authorization", "Bearer "+c.token)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	return resp
}

// doJSON sends an unauthenticated request.
func doJSON(t *testing.T, ts *testutil.TestServer, method, path string, payload interface{}) *http.Response {
	t.Helper()

	req := newJSONRequest(t, ts, method, path, payload)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func newJSONRequest(t *testing.T, ts *testutil.TestServer, method, path string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, ts.URL(path), &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}
