package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/fotokiosk/kiosk/internal/model"
)

func TestPreview_CoverWithoutCrop(t *testing.T) {
	source := encodeTestJPEG(t, 100, 100, red)

	_, err := New().Preview(context.Background(), source, model.EditParameters{Fit: model.FitCover})
	if !errors.Is(err, ErrIncompleteEdit) {
		t.Fatalf("got %v, want ErrIncompleteEdit", err)
	}
}

func TestPreview_CoverMatchesCropRect(t *testing.T) {
	gray := color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	source := encodeTestJPEG(t, 800, 600, gray)

	edits := model.EditParameters{
		Fit:  model.FitCover,
		Crop: &model.CropRect{X: 100, Y: 50, Width: 400, Height: 300},
	}

	out, err := New().Preview(context.Background(), source, edits)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	img := decodeOutput(t, out)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("preview is %dx%d, want crop size 400x300", b.Dx(), b.Dy())
	}
	nearGray(t, img, 200, 150, 100, 10)
}

func TestPreview_ContainPadsToAspectRatio(t *testing.T) {
	gray := color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	source := encodeTestJPEG(t, 600, 600, gray)

	edits := model.EditParameters{Fit: model.FitContain, AspectRatio: 1.5}

	out, err := New().Preview(context.Background(), source, edits)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	img := decodeOutput(t, out)
	b := img.Bounds()
	// Square image in a 3:2 frame: width grows to 900, height stays.
	if b.Dx() != 900 || b.Dy() != 600 {
		t.Fatalf("preview is %dx%d, want 900x600", b.Dx(), b.Dy())
	}
	nearGray(t, img, 40, 300, 255, 10)
	nearGray(t, img, 450, 300, 100, 10)
}

func TestPreview_BoundsLongestSide(t *testing.T) {
	source := encodeTestJPEG(t, 3000, 2000, red)

	edits := model.EditParameters{Fit: model.FitContain}

	out, err := New().Preview(context.Background(), source, edits)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	img := decodeOutput(t, out)
	b := img.Bounds()
	if b.Dx() > 2000 || b.Dy() > 2000 {
		t.Fatalf("preview is %dx%d, exceeds the 2000px bound", b.Dx(), b.Dy())
	}
	// Aspect ratio must survive the downscale.
	if b.Dx() != 2000 {
		t.Errorf("longest side = %d, want exactly 2000", b.Dx())
	}
}

func TestPreview_SmallSourceNotUpscaled(t *testing.T) {
	source := encodeTestJPEG(t, 300, 200, red)

	out, err := New().Preview(context.Background(), source, model.EditParameters{Fit: model.FitContain})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	img := decodeOutput(t, out)
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("preview is %dx%d, want the untouched 300x200", b.Dx(), b.Dy())
	}
}

func TestPreview_SameStagesAsPrint(t *testing.T) {
	// A preview crop and a print of the same edit onto a format matching the
	// crop size must show the same pixels, modulo JPEG quality.
	source := encodeSplitJPEG(t, 800, 600, red, blue)
	edits := model.EditParameters{
		Rotation: 180,
		Fit:      model.FitCover,
		Crop:     &model.CropRect{X: 0, Y: 0, Width: 400, Height: 400},
	}

	r := New()
	preview, err := r.Preview(context.Background(), source, edits)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	print, err := r.Print(context.Background(), source, squareFormat(400), &edits)
	if err != nil {
		t.Fatalf("Print: %v", err)
	}

	pImg := decodeOutput(t, preview)
	fImg := decodeOutput(t, print)

	for _, pt := range []struct{ x, y int }{{50, 200}, {350, 200}} {
		pc := pImg.NRGBAAt(pt.x, pt.y)
		fc := fImg.NRGBAAt(pt.x, pt.y)
		if absDiff(pc.R, fc.R) > 12 || absDiff(pc.G, fc.G) > 12 || absDiff(pc.B, fc.B) > 12 {
			t.Errorf("pixel (%d,%d) diverges: preview %v vs print %v", pt.x, pt.y, pc, fc)
		}
	}
}

func TestPreview_Cancelled(t *testing.T) {
	source := encodeTestJPEG(t, 100, 100, red)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	edits := model.EditParameters{
		Rotation: 90,
		Fit:      model.FitCover,
		Crop:     &model.CropRect{X: 0, Y: 0, Width: 50, Height: 50},
	}
	if _, err := New().Preview(ctx, source, edits); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestPreview_Deterministic(t *testing.T) {
	source := encodeSplitJPEG(t, 400, 300, red, blue)
	edits := model.EditParameters{Fit: model.FitContain, Saturation: 1.3}

	r := New()
	first, err := r.Preview(context.Background(), source, edits)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	second, err := r.Preview(context.Background(), source, edits)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different preview bytes")
	}
}
