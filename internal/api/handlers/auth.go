package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/api/respond"
	"github.com/Aayush1011/poker-planning-backend/internal/config"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	UserName        string `json:"userName" validate:"required,min=5,max=16"`
	Password        string `json:"password" validate:"required,min=5,max=16"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=16"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	UserName string `json:"userName"`
}

type RefreshRequest struct {
	Fingerprint string `json:"fingerprint"`
}

type RefreshResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, domain.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := checkRequest(req); err != nil {
		respond.Error(w, err)
		return
	}

	_, err := h.authService.SignUp(r.Context(), service.SignUpInput{
		Email:           req.Email,
		UserName:        req.UserName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, domain.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := checkRequest(req); err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.setAuthCookies(w, result)
	respond.JSON(w, http.StatusOK, LoginResponse{
		Message:  "Logged in successfully",
		Token:    result.AccessToken,
		UserID:   result.User.ID,
		UserName: result.User.UserName,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	// The fingerprint hash in the body is optional; when present it must
	// match the cookie the caller holds.
	var req RefreshRequest
	if r.Body != nil {
		// Ignore decode errors so an empty body stays valid.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var refreshToken, fingerprint string
	if cookie, err := r.Cookie(service.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}
	if cookie, err := r.Cookie(service.FingerprintCookieName); err == nil {
		fingerprint = cookie.Value
	}

	result, err := h.authService.Refresh(r.Context(), refreshToken, fingerprint, req.Fingerprint)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.setAuthCookies(w, result)
	respond.JSON(w, http.StatusOK, RefreshResponse{
		Message: "refresh successful",
		Token:   result.AccessToken,
	})
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, result *service.TokenResult) {
	maxAge := int(service.CookieMaxAge.Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     service.FingerprintCookieName,
		Value:    result.Fingerprint,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     service.RefreshTokenCookieName,
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
	})
}
