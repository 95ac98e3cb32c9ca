package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/fotokiosk/kiosk/internal/constants"
	"github.com/fotokiosk/kiosk/internal/model"
	"github.com/fotokiosk/kiosk/internal/render"
)

// PreviewHandler renders editor previews on demand. The POS front end posts
// the photo bytes plus the current edit parameters and shows the returned
// JPEG while the operator drags crop handles and sliders.
type PreviewHandler struct {
	renderer *render.Renderer
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(renderer *render.Renderer) *PreviewHandler {
	return &PreviewHandler{renderer: renderer}
}

// Preview handles POST /photos/preview: multipart form with a "file" part
// (photo bytes) and an "edits" field (JSON edit parameters).
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	var edits model.EditParameters
	if raw := r.FormValue("edits"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &edits); err != nil {
			respondError(w, http.StatusBadRequest, errInvalidRequestBody)
			return
		}
	}
	if err := edits.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	source, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	preview, err := h.renderer.Preview(r.Context(), source, edits)
	switch {
	case errors.Is(err, render.ErrIncompleteEdit):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, render.ErrUnsupportedImage):
		respondError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	case err != nil:
		log.Printf("rendering preview: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(preview)
}
