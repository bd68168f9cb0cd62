package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/repository/postgres"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
	"github.com/Aayush1011/poker-planning-backend/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignUp(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      service.SignUpInput
		setup      func()
		wantErr    error
		wantStatus int
		wantField  string
	}{
		{
			name: "successful signup",
			input: service.SignUpInput{
				Email:           "newuser@example.com",
				UserName:        "newuser",
				Password:        "pass123",
				ConfirmPassword: "pass123",
			},
		},
		{
			name: "password confirmation mismatch",
			input: service.SignUpInput{
				Email:           "other@example.com",
				UserName:        "otheruser",
				Password:        "pass123",
				ConfirmPassword: "pass124",
			},
			wantErr: service.ErrPasswordMismatch,
		},
		{
			name: "duplicate email",
			input: service.SignUpInput{
				Email:           "taken@example.com",
				UserName:        "freshname",
				Password:        "pass123",
				ConfirmPassword: "pass123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantStatus: http.StatusConflict,
			wantField:  "email",
		},
		{
			name: "duplicate username",
			input: service.SignUpInput{
				Email:           "fresh@example.com",
				UserName:        "takenname",
				Password:        "pass123",
				ConfirmPassword: "pass123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUserName("takenname").
					Build(t, testDB.DB)
			},
			wantStatus: http.StatusConflict,
			wantField:  "userName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := authService.SignUp(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantStatus != 0 {
				require.Error(t, err)
				appErr, ok := domain.AsError(err)
				require.True(t, ok, "expected a tagged domain error, got %v", err)
				assert.Equal(t, tt.wantStatus, appErr.Status)
				assert.Contains(t, appErr.Fields, tt.wantField)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.NotEqual(t, tt.input.Password, user.HashedPassword)
			assert.Nil(t, user.RefreshToken, "signup must not issue a refresh token")
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: service.ErrWrongPassword,
		},
		{
			name: "unknown email",
			input: service.LoginInput{
				Email:    "nobody@example.com",
				Password: "anypassword",
			},
			wantErr: service.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
			assert.NotEmpty(t, result.Fingerprint)

			stored, err := repos.User.GetByID(ctx, user.ID)
			require.NoError(t, err)
			require.NotNil(t, stored.RefreshToken)
			assert.Equal(t, result.RefreshToken, *stored.RefreshToken)
		})
	}
}

func TestAuthService_Login_RotatesRefreshToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, testutil.TestConfig())
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)
	input := service.LoginInput{Email: user.Email, Password: rawPassword}

	first, err := authService.Login(ctx, input)
	require.NoError(t, err)
	second, err := authService.Login(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "login must rotate the refresh token")
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint, "login must rotate the fingerprint")

	// Only the latest value is stored; the first token is unusable.
	stored, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.RefreshToken, *stored.RefreshToken)

	_, err = authService.Refresh(ctx, first.RefreshToken, "", "")
	assert.ErrorIs(t, err, service.ErrUnknownRefreshToken)
}

func TestAuthService_Refresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, testutil.TestConfig())
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)
	login, err := authService.Login(ctx, service.LoginInput{Email: user.Email, Password: rawPassword})
	require.NoError(t, err)

	t.Run("rotates token and fingerprint", func(t *testing.T) {
		result, err := authService.Refresh(ctx, login.RefreshToken, login.Fingerprint, service.FingerprintHash(login.Fingerprint))
		require.NoError(t, err)

		assert.NotEqual(t, login.RefreshToken, result.RefreshToken)
		assert.NotEqual(t, login.Fingerprint, result.Fingerprint)

		stored, err := repos.User.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, result.RefreshToken, *stored.RefreshToken)
		assert.True(t, stored.RefreshTokenExpiresAt.After(time.Now().Add(29*24*time.Hour)),
			"rotated refresh token should live ~30 days")

		// the replaced token no longer resolves
		_, err = authService.Refresh(ctx, login.RefreshToken, "", "")
		assert.ErrorIs(t, err, service.ErrUnknownRefreshToken)

		login = result
	})

	t.Run("fingerprint hash mismatch", func(t *testing.T) {
		_, err := authService.Refresh(ctx, login.RefreshToken, login.Fingerprint, service.FingerprintHash("someone-elses-secret"))
		assert.ErrorIs(t, err, service.ErrFingerprintMismatch)
	})

	t.Run("fingerprint hash without cookie", func(t *testing.T) {
		_, err := authService.Refresh(ctx, login.RefreshToken, "", service.FingerprintHash(login.Fingerprint))
		assert.ErrorIs(t, err, service.ErrFingerprintMismatch)
	})

	t.Run("unknown refresh token", func(t *testing.T) {
		_, err := authService.Refresh(ctx, "11111111-2222-3333-4444-555555555555", "", "")
		assert.ErrorIs(t, err, service.ErrUnknownRefreshToken)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)
	login, err := authService.Login(ctx, service.LoginInput{Email: user.Email, Password: rawPassword})
	require.NoError(t, err)

	t.Run("valid token carries bound claims", func(t *testing.T) {
		claims, err := authService.ValidateToken(login.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, service.FingerprintHash(login.Fingerprint), claims.Fingerprint)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signTestToken(t, cfg.TokenSecret, user.ID, -time.Minute)
		_, err := authService.ValidateToken(expired)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong signature", func(t *testing.T) {
		forged := signTestToken(t, "not-the-real-secret", user.ID, time.Minute)
		_, err := authService.ValidateToken(forged)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func signTestToken(t *testing.T, secret string, userID uint, ttl time.Duration) string {
	t.Helper()

	claims := service.Claims{
		UserID:      userID,
		Fingerprint: service.FingerprintHash("fingerprint"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
