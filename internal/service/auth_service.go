package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Aayush1011/poker-planning-backend/internal/config"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	FingerprintCookieName  = "__User-Fgp"
	RefreshTokenCookieName = "__User-Refr-Tok"
	CookieMaxAge           = 30 * 24 * time.Hour

	accessTokenTTL  = 10 * time.Minute
	loginRefreshTTL = time.Hour
	// a refresh extends the session much further than the initial login
	rotatedRefreshTTL = 30 * 24 * time.Hour

	fingerprintBytes = 50
	bcryptCost       = 12
)

var (
	ErrPasswordMismatch    = domain.NewError(http.StatusForbidden, "Password and confirm password don't match")
	ErrUserNotFound        = domain.NewError(http.StatusUnauthorized, "A user with this email could not be found")
	ErrWrongPassword       = domain.NewError(http.StatusUnauthorized, "Wrong password")
	ErrUnknownRefreshToken = domain.NewError(http.StatusUnauthorized, "User not found")
	ErrFingerprintMismatch = domain.NewError(http.StatusBadRequest, "Unable to refresh JWT token")
)

// Claims binds the bearer token to a hash of the fingerprint cookie. The
// token alone cannot authenticate without the httpOnly cookie, and the
// cookie alone cannot authenticate without the token.
type Claims struct {
	UserID      uint   `json:"userId"`
	Fingerprint string `json:"fingerprint"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

type SignUpInput struct {
	Email           string
	UserName        string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

// TokenResult carries everything the handler turns into a response: the
// signed access token plus the raw cookie values.
type TokenResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	Fingerprint  string
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:          input.Email,
		UserName:       input.UserName,
		HashedPassword: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if fieldErr := mapUniqueViolation(err); fieldErr != nil {
			return nil, fieldErr
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.issueTokens(ctx, user, loginRefreshTTL)
}

// Refresh rotates the caller's refresh token and fingerprint. When the
// caller supplies its own fingerprint hash it must match the hash of the
// fingerprint cookie it currently holds; a mismatch means the token and
// cookie come from different clients.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, fingerprintCookie, claimedFingerprintHash string) (*TokenResult, error) {
	if claimedFingerprintHash != "" {
		if fingerprintCookie == "" {
			return nil, ErrFingerprintMismatch
		}
		if FingerprintHash(fingerprintCookie) != claimedFingerprintHash {
			return nil, ErrFingerprintMismatch
		}
	}

	user, err := s.userRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRefreshToken
		}
		return nil, err
	}

	return s.issueTokens(ctx, user, rotatedRefreshTTL)
}

// issueTokens replaces the user's stored refresh token, generates a fresh
// fingerprint secret, and signs an access token bound to its hash.
// Overwriting the stored token invalidates whatever a stale client holds.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, refreshTTL time.Duration) (*TokenResult, error) {
	refreshToken := uuid.NewString()
	expiresAt := time.Now().Add(refreshTTL)
	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiresAt = &expiresAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	fingerprint, err := newFingerprint()
	if err != nil {
		return nil, err
	}

	accessToken, err := s.signAccessToken(user.ID, FingerprintHash(fingerprint))
	if err != nil {
		return nil, err
	}

	return &TokenResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Fingerprint:  fingerprint,
	}, nil
}

func (s *AuthService) signAccessToken(userID uint, fingerprintHash string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      userID,
		Fingerprint: fingerprintHash,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.TokenSecret))
}

// ValidateToken verifies the signature and expiry and returns the claims.
// Callers distinguish an expired token via errors.Is(err, jwt.ErrTokenExpired).
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// FingerprintHash is the one-way hash embedded in the token claims; only
// the raw secret lives in the httpOnly cookie.
func FingerprintHash(fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return hex.EncodeToString(sum[:])
}

func newFingerprint() (string, error) {
	buf := make([]byte, fingerprintBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// mapUniqueViolation turns a postgres unique-constraint error into a 409
// with a per-field message, matching the constraint that was hit.
func mapUniqueViolation(err error) *domain.Error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	fields := map[string]string{}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		fields["email"] = "Email address already exists"
	case strings.Contains(pgErr.ConstraintName, "user_name"):
		fields["userName"] = "Username already taken"
	default:
		fields["base"] = "Duplicate value"
	}
	return domain.NewFieldError(http.StatusConflict, "Validation failed", fields)
}
