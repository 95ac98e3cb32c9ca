package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/fotokiosk/kiosk/internal/geometry"
	"github.com/fotokiosk/kiosk/internal/model"
	"github.com/fotokiosk/kiosk/internal/tone"
)

// white is the background fill for rotation corners, crop padding and
// contain letterboxing. Prints are on white paper, so padding disappears.
var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// rotateStage applies the user rotation clockwise, growing the canvas to
// the rotated bounding box and filling exposed corners with white.
func rotateStage(img *image.NRGBA, degrees float64) *image.NRGBA {
	deg := math.Mod(degrees, 360)
	if deg == 0 {
		return img
	}
	// imaging rotates counterclockwise for positive angles; edit rotations
	// are screen-space clockwise.
	return imaging.Rotate(img, -deg, white)
}

// colorStage applies brightness, saturation and contrast per pixel.
// A full no-op edit skips the pass entirely.
func colorStage(img *image.NRGBA, e model.EditParameters) *image.NRGBA {
	if e.Brightness == 1 && e.Saturation == 1 && e.Contrast == 1 {
		return img
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return tone.Adjust(c, e.Brightness, e.Saturation, e.Contrast)
	})
}

// cropPadStage extracts exactly the crop rectangle from the rotated image.
// Regions of the crop outside the image are left white instead of erroring;
// the editor's pixel grid and ours round independently, so crops can hang
// slightly off the canvas.
func cropPadStage(img *image.NRGBA, crop model.CropRect) *image.NRGBA {
	w, h, ox, oy := geometry.CoverCanvas(crop.X, crop.Y, crop.Width, crop.Height)
	canvas := imaging.New(w, h, white)
	return imaging.Paste(canvas, img, image.Pt(ox, oy))
}

// resizeStage scales the image into the format's image area. Cover crops
// centered to fill the area exactly; contain letterboxes on white.
func resizeStage(img *image.NRGBA, width, height int, fit model.FitMode) *image.NRGBA {
	if fit == model.FitContain {
		fitted := imaging.Fit(img, width, height, imaging.Lanczos)
		canvas := imaging.New(width, height, white)
		return imaging.PasteCenter(canvas, fitted)
	}
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}

// canvasStage centers the image area onto the full paper canvas. A no-op
// when the format's image and canvas areas coincide; otherwise the extra
// stock (e.g. a 5x7 produced on 6x8 paper) stays white.
func canvasStage(img *image.NRGBA, canvasWidth, canvasHeight int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == canvasWidth && b.Dy() == canvasHeight {
		return img
	}
	canvas := imaging.New(canvasWidth, canvasHeight, white)
	return imaging.PasteCenter(canvas, img)
}
