// Package render produces print-ready rasters from source photos and
// persisted edit parameters. The pipeline is modeled as explicit stages
// (rotate, adjust color, crop or pad, resize, composite onto canvas) so
// ordering and intermediate buffers are controlled and testable; the
// preview and print paths share the same stages and stage order.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"

	"github.com/fotokiosk/kiosk/internal/constants"
	"github.com/fotokiosk/kiosk/internal/formats"
	"github.com/fotokiosk/kiosk/internal/model"
)

var (
	// ErrUnsupportedImage means the source bytes are not decodable as an
	// image. The dispatcher reacts with a raw-copy fallback, never a retry.
	ErrUnsupportedImage = errors.New("unsupported image data")

	// ErrIncompleteEdit means cover fit was requested without a crop
	// rectangle. Surfaced when saving or previewing an edit, not at dispatch.
	ErrIncompleteEdit = errors.New("cover fit requires a crop rectangle")
)

// Renderer is the authoritative print renderer; its output is what
// physically prints.
type Renderer struct {
	// SmartOrientation rotates never-edited photos 90 degrees when their
	// orientation disagrees with the format's. Best-effort default for
	// raw imports; disable it to print exactly as shot.
	SmartOrientation bool
}

// New returns a renderer with smart orientation enabled.
func New() *Renderer {
	return &Renderer{SmartOrientation: true}
}

// decodeUpright decodes source bytes and applies any embedded EXIF
// orientation, producing an upright image. This always runs before
// user-specified rotation.
func decodeUpright(source []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(source), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return imaging.Clone(img), nil
}

// Print renders one photo into the exact pixel dimensions of a print
// format. Deterministic: identical inputs yield byte-identical JPEG output.
//
// Stage order (rotate before crop is the only order-sensitive pairing; the
// crop rectangle is defined against the rotated image):
//
//  1. orientation normalize (EXIF)
//  2. user rotation, white background fill
//  3. brightness/saturation/contrast
//  4. cover crop with white out-of-bounds padding
//  5. smart orientation fallback for unedited photos
//  6. resize into the format's image area (cover or contain)
//  7. center-composite onto the format's canvas area
//  8. encode as baseline JPEG with a 300 DPI density tag
func (r *Renderer) Print(ctx context.Context, source []byte, format formats.Format, edits *model.EditParameters) ([]byte, error) {
	img, err := decodeUpright(source)
	if err != nil {
		return nil, err
	}

	fit := model.FitCover
	if edits != nil {
		e := edits.Normalized()
		fit = e.Fit

		img = rotateStage(img, e.Rotation)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render cancelled: %w", err)
		}

		img = colorStage(img, e)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render cancelled: %w", err)
		}

		if e.Fit == model.FitCover && e.Crop != nil {
			img = cropPadStage(img, *e.Crop)
		}
	} else if r.SmartOrientation && isLandscape(img) != format.IsLandscape() {
		// Never-edited photo whose orientation mismatches the paper:
		// rotate a quarter turn instead of cropping away most of it.
		img = imaging.Rotate90(img)
	}

	img = resizeStage(img, format.ImageWidth, format.ImageHeight, fit)
	img = canvasStage(img, format.CanvasWidth, format.CanvasHeight)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}
	return encodePrintJPEG(img)
}

// isLandscape reports whether an image is wider than tall.
func isLandscape(img image.Image) bool {
	b := img.Bounds()
	return b.Dx() > b.Dy()
}

// encodePrintJPEG encodes the final raster as a baseline JPEG and stamps
// the print density tag the spooler relies on for physical scaling.
func encodePrintJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(constants.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encoding print JPEG: %w", err)
	}
	return withDensity(buf.Bytes(), constants.PrintDPI)
}
