package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mari/gift-list-website/internal/api/middleware"
	"github.com/mari/gift-list-website/internal/live"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

type GiftHandler struct {
	giftService *service.GiftService
	hub         *live.Hub
	log         *logrus.Logger
}

func NewGiftHandler(giftService *service.GiftService, hub *live.Hub, log *logrus.Logger) *GiftHandler {
	return &GiftHandler{giftService: giftService, hub: hub, log: log}
}

func (h *GiftHandler) List(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())

	gifts, err := h.giftService.List(r.Context(), session.User.ID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, gifts)
}

func (h *GiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())

	var input service.GiftInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gift, err := h.giftService.Create(r.Context(), session.User.ID, input)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.hub.GiftsUpdated(session.Profile.Username)
	respondJSON(w, http.StatusCreated, gift)
}

func (h *GiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	giftID := chi.URLParam(r, "giftID")

	var update service.GiftUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gift, err := h.giftService.Update(r.Context(), session.User.ID, giftID, update)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.hub.GiftsUpdated(session.Profile.Username)
	respondJSON(w, http.StatusOK, gift)
}

func (h *GiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	giftID := chi.URLParam(r, "giftID")

	if err := h.giftService.Delete(r.Context(), session.User.ID, giftID); err != nil {
		respondError(w, h.log, err)
		return
	}

	h.hub.GiftsUpdated(session.Profile.Username)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
