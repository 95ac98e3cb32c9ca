package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fotokiosk/kiosk/internal/constants"
	"github.com/fotokiosk/kiosk/internal/model"
)

// UploadHandler receives browser photo uploads into the temp upload
// directory, where they wait until their order is dispatched or the
// retention sweep reclaims them.
type UploadHandler struct {
	tempUploadDir string
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(tempUploadDir string) *UploadHandler {
	return &UploadHandler{tempUploadDir: tempUploadDir}
}

// saveUpload stores one multipart file as <timestamp>_<sanitized-name>.
func (h *UploadHandler) saveUpload(fileHeader *multipart.FileHeader) (model.Photo, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return model.Photo{}, fmt.Errorf("opening %s: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	safeName := filepath.Base(fileHeader.Filename)
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), safeName)

	out, err := os.Create(filepath.Join(h.tempUploadDir, storedName)) //nolint:gosec // filename sanitized via filepath.Base
	if err != nil {
		return model.Photo{}, fmt.Errorf("creating temp file for %s: %w", safeName, err)
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return model.Photo{}, fmt.Errorf("saving %s: %w", safeName, err)
	}
	if err := out.Close(); err != nil {
		return model.Photo{}, fmt.Errorf("saving %s: %w", safeName, err)
	}

	return model.Photo{
		ID:       uuid.NewString(),
		Name:     safeName,
		FileName: storedName,
	}, nil
}

// Upload handles multipart photo uploads and returns the photo records the
// front end attaches to cart items.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	if err := os.MkdirAll(h.tempUploadDir, 0o755); err != nil {
		log.Printf("creating temp upload dir: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	photos := make([]model.Photo, 0, len(files))
	for _, fileHeader := range files {
		photo, err := h.saveUpload(fileHeader)
		if err != nil {
			log.Printf("upload: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to save upload")
			return
		}
		photos = append(photos, photo)
	}

	respondJSON(w, http.StatusOK, map[string]any{"photos": photos})
}
