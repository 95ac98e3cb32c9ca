package render

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/fotokiosk/kiosk/internal/constants"
	"github.com/fotokiosk/kiosk/internal/geometry"
	"github.com/fotokiosk/kiosk/internal/model"
)

// previewQuality trades fidelity for responsiveness; the print renderer
// re-renders from the original source at full quality.
const previewQuality = 85

// Preview renders a fidelity-reduced preview of an edit for the POS editor.
// It applies the same stages in the same order as Print but has no format:
// cover output is the crop rectangle itself, contain output pads to the
// edit's aspect ratio. The longest side is bounded to keep previews fast.
//
// Unlike Print, a cover edit without a crop rectangle is an error here:
// the editor must not save a crop it never computed.
func (r *Renderer) Preview(ctx context.Context, source []byte, edits model.EditParameters) ([]byte, error) {
	e := edits.Normalized()
	if e.Fit == model.FitCover && e.Crop == nil {
		return nil, ErrIncompleteEdit
	}

	img, err := decodeUpright(source)
	if err != nil {
		return nil, err
	}

	img = rotateStage(img, e.Rotation)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("preview cancelled: %w", err)
	}

	img = colorStage(img, e)

	if e.Fit == model.FitCover {
		img = cropPadStage(img, *e.Crop)
	} else if e.AspectRatio > 0 {
		b := img.Bounds()
		cw, ch := geometry.ResolveContainCanvas(float64(b.Dx()), float64(b.Dy()), e.AspectRatio)
		canvas := imaging.New(int(cw+0.5), int(ch+0.5), white)
		img = imaging.PasteCenter(canvas, img)
	}

	img = boundPreview(img)

	return encodePreviewJPEG(img)
}

// boundPreview downscales so neither dimension exceeds the preview bound.
// Smaller images pass through untouched; previews never upscale.
func boundPreview(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= constants.MaxPreviewDimension && b.Dy() <= constants.MaxPreviewDimension {
		return img
	}
	return imaging.Fit(img, constants.MaxPreviewDimension, constants.MaxPreviewDimension, imaging.Lanczos)
}

func encodePreviewJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(previewQuality)); err != nil {
		return nil, fmt.Errorf("encoding preview JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
