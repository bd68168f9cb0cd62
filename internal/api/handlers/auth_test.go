package handlers_test

import (
	"net/http"
	"testing"

	"github.com/Aayush1011/poker-planning-backend/internal/service"
	"github.com/Aayush1011/poker-planning-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	signUpBody := func(email, userName string) map[string]string {
		return map[string]string{
			"email":           email,
			"userName":        userName,
			"password":        "secret1",
			"confirmPassword": "secret1",
		}
	}

	t.Run("creates a user", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPut, "/signup", signUpBody("alice@example.com", "alice_dev"))
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		var body struct {
			Message string `json:"message"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "user created", body.Message)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPut, "/signup", signUpBody("alice@example.com", "other_name"))
		defer resp.Body.Close()

		body := testutil.AssertErrorResponse(t, resp, http.StatusConflict, "Validation failed")
		assert.Contains(t, body.Data, "email")
	})

	t.Run("password mismatch is forbidden", func(t *testing.T) {
		payload := signUpBody("bob@example.com", "bob_builds")
		payload["confirmPassword"] = "different"
		resp := doJSON(t, ts, http.MethodPut, "/signup", payload)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "don't match")
	})

	t.Run("short username fails validation", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPut, "/signup", signUpBody("carol@example.com", "cd"))
		defer resp.Body.Close()

		body := testutil.AssertErrorResponse(t, resp, http.StatusUnprocessableEntity, "Validation failed")
		assert.Contains(t, body.Data, "userName")
	})

	t.Run("malformed email fails validation", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPut, "/signup", signUpBody("not-an-email", "carol_dev"))
		defer resp.Body.Close()

		body := testutil.AssertErrorResponse(t, resp, http.StatusUnprocessableEntity, "Validation failed")
		assert.Contains(t, body.Data, "email")
	})
}

func TestLoginEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	t.Run("sets both auth cookies", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPost, "/login", map[string]string{
			"email":    user.Email,
			"password": rawPassword,
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body struct {
			Message  string `json:"message"`
			Token    string `json:"token"`
			UserID   uint   `json:"userId"`
			UserName string `json:"userName"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "Logged in successfully", body.Message)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, user.ID, body.UserID)
		assert.Equal(t, user.UserName, body.UserName)

		fingerprint := testutil.CookieValue(t, resp, service.FingerprintCookieName)
		refreshToken := testutil.CookieValue(t, resp, service.RefreshTokenCookieName)
		assert.NotEmpty(t, fingerprint)
		assert.NotEmpty(t, refreshToken)

		for _, cookie := range resp.Cookies() {
			assert.True(t, cookie.HttpOnly, "cookie %s must be httpOnly", cookie.Name)
			assert.Equal(t, "/", cookie.Path)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPost, "/login", map[string]string{
			"email":    user.Email,
			"password": "badpassword",
		})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Wrong password")
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPost, "/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "anything",
		})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "could not be found")
	})
}

func TestRefreshEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	client := loginAs(t, ts)

	t.Run("rotates cookies and returns a new token", func(t *testing.T) {
		req := newJSONRequest(t, ts, http.MethodPost, "/refresh-jwt", nil)
		for _, cookie := range client.cookies {
			req.AddCookie(cookie)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body struct {
			Message string `json:"message"`
			Token   string `json:"token"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "refresh successful", body.Message)
		assert.NotEmpty(t, body.Token)
		assert.NotEqual(t, client.token, body.Token)

		newRefresh := testutil.CookieValue(t, resp, service.RefreshTokenCookieName)
		oldRefresh := cookieByName(t, client.cookies, service.RefreshTokenCookieName)
		assert.NotEqual(t, oldRefresh, newRefresh, "refresh must rotate the stored token")

		// stale cookies no longer refresh
		stale := newJSONRequest(t, ts, http.MethodPost, "/refresh-jwt", nil)
		for _, cookie := range client.cookies {
			stale.AddCookie(cookie)
		}
		staleResp, err := http.DefaultClient.Do(stale)
		require.NoError(t, err)
		defer staleResp.Body.Close()
		testutil.AssertErrorResponse(t, staleResp, http.StatusUnauthorized, "User not found")

		client.cookies = resp.Cookies()
		client.token = body.Token
	})

	t.Run("fingerprint hash mismatch in body", func(t *testing.T) {
		req := newJSONRequest(t, ts, http.MethodPost, "/refresh-jwt", map[string]string{
			"fingerprint": service.FingerprintHash("some-other-secret"),
		})
		for _, cookie := range client.cookies {
			req.AddCookie(cookie)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Unable to refresh JWT token")
	})

	t.Run("no cookies at all", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPost, "/refresh-jwt", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "User not found")
	})
}

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) string {
	t.Helper()
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	t.Fatalf("cookie %q not held by client", name)
	return ""
}
