package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mari/gift-list-website/internal/api/middleware"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	log            *logrus.Logger
}

func NewProfileHandler(profileService *service.ProfileService, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, log: log}
}

// GetPublic serves the public gift page: profile plus gifts by username.
func (h *ProfileHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.profileService.GetByUsername(r.Context(), username)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// ListPublic serves the directory of public lists.
func (h *ProfileHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	entries, err := h.profileService.ListPublic(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// GetOwn returns the authenticated owner's profile for the admin panel.
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	respondJSON(w, http.StatusOK, session.Profile)
}

// UpdateOwn merges a partial profile update and returns the stored record.
func (h *ProfileHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())

	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), session.User.ID, update)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
