package handlers

import (
	"net/http"

	"github.com/fotokiosk/kiosk/internal/formats"
)

// FormatsHandler exposes the print format registry to the POS front end.
type FormatsHandler struct {
	registry *formats.Registry
}

// NewFormatsHandler creates a new formats handler.
func NewFormatsHandler(registry *formats.Registry) *FormatsHandler {
	return &FormatsHandler{registry: registry}
}

// List handles GET /formats.
func (h *FormatsHandler) List(w http.ResponseWriter, r *http.Request) {
	type formatResponse struct {
		SKU          string `json:"sku"`
		Folder       string `json:"folder"`
		ImageWidth   int    `json:"imageWidth"`
		ImageHeight  int    `json:"imageHeight"`
		CanvasWidth  int    `json:"canvasWidth"`
		CanvasHeight int    `json:"canvasHeight"`
		Price        int    `json:"price"`
		PerPair      bool   `json:"perPair"`
	}

	all := h.registry.All()
	out := make([]formatResponse, 0, len(all))
	for _, f := range all {
		out = append(out, formatResponse{
			SKU:          f.SKU,
			Folder:       f.Folder,
			ImageWidth:   f.ImageWidth,
			ImageHeight:  f.ImageHeight,
			CanvasWidth:  f.CanvasWidth,
			CanvasHeight: f.CanvasHeight,
			Price:        f.Price,
			PerPair:      f.PerPair,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"formats": out})
}
