package handlers

import (
	"errors"
	"net/http"

	"github.com/mari/gift-list-website/internal/media"
	"github.com/sirupsen/logrus"
)

type MediaHandler struct {
	store *media.Store
	log   *logrus.Logger
}

func NewMediaHandler(store *media.Store, log *logrus.Logger) *MediaHandler {
	return &MediaHandler{store: store, log: log}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts one image as a multipart form field named "image" and
// returns its public URL for use in profileImage or a gift's imageUrl.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 6<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.store.Upload(r.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUnsupportedType):
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, media.ErrTooLarge):
			respondErrorMessage(w, http.StatusRequestEntityTooLarge, err.Error())
		default:
			h.log.WithError(err).Error("image upload failed")
			respondErrorMessage(w, http.StatusInternalServerError, "something went wrong, try again")
		}
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{URL: url})
}
