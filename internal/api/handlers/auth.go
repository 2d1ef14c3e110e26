package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mari/gift-list-website/internal/api/middleware"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *logrus.Logger
}

func NewAuthHandler(authService *service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         UserResponse        `json:"user"`
	Profile      *domain.UserProfile `json:"profile,omitempty"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type SessionResponse struct {
	User    UserResponse        `json:"user"`
	Profile *domain.UserProfile `json:"profile,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" || req.DisplayName == "" {
		respondErrorMessage(w, http.StatusBadRequest, "email, password, username and display name are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	}, sessionMetadata(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondErrorMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, sessionMetadata(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse(result))
}

// Me returns the session snapshot: identity plus resolved profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		respondError(w, h.log, service.ErrNotAuthenticated)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{
		User: UserResponse{
			ID:          session.User.ID.String(),
			Email:       session.User.Email,
			DisplayName: session.User.DisplayName,
		},
		Profile: session.Profile,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		respondError(w, h.log, service.ErrNotAuthenticated)
		return
	}

	if err := h.authService.Logout(r.Context(), session.User.ID); err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func authResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:          result.User.ID.String(),
			Email:       result.User.Email,
			DisplayName: result.User.DisplayName,
		},
		Profile:      result.Profile,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}

func sessionMetadata(r *http.Request) domain.SessionMetadata {
	return domain.SessionMetadata{
		UserAgent: r.UserAgent(),
		RemoteIP:  r.RemoteAddr,
	}
}
