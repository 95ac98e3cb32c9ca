package model

import (
	"fmt"

	"github.com/fotokiosk/kiosk/internal/constants"
)

// FitMode selects how a photo is mapped onto the print frame.
type FitMode string

const (
	// FitCover crops the photo so it exactly fills the frame.
	FitCover FitMode = "cover"
	// FitContain keeps the whole photo visible, padding with white.
	FitContain FitMode = "contain"
)

// CropRect is a crop rectangle in pixels, relative to the image dimensions
// after rotation is applied (never the raw source dimensions). It may extend
// outside the image; out-of-bounds regions render as white padding.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// EditParameters captures the operator's interactive edits for one photo.
// It is persisted JSON-encoded inside the order's items field, so field
// names are part of the storage format.
type EditParameters struct {
	// Rotation in degrees, applied after orientation normalization.
	// Typically one of 0/90/180/270 but any value is accepted.
	Rotation float64 `json:"rotation"`

	// Scale is the cropper zoom factor (>= 1). Only the interactive cropper
	// uses it; the crop rectangle already encodes the effective view, so the
	// print renderer ignores it.
	Scale float64 `json:"scale,omitempty"`

	// Brightness, Saturation and Contrast are multiplicative factors.
	// 1 is a no-op; 0 means "unset" and normalizes to 1.
	Brightness float64 `json:"brightness"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`

	Fit  FitMode   `json:"fit"`
	Crop *CropRect `json:"crop,omitempty"`

	// AspectRatio is the target width/height ratio actually used to compute
	// the crop or padding. It can differ from the nominal product ratio when
	// smart orientation swapped width and height to match the photo.
	AspectRatio float64 `json:"aspectRatio,omitempty"`
}

// Normalized returns a copy with unset factors replaced by the no-op value
// and an unset fit mode defaulted to cover.
func (e EditParameters) Normalized() EditParameters {
	if e.Brightness == 0 {
		e.Brightness = 1
	}
	if e.Saturation == 0 {
		e.Saturation = 1
	}
	if e.Contrast == 0 {
		e.Contrast = 1
	}
	if e.Scale == 0 {
		e.Scale = 1
	}
	if e.Fit == "" {
		e.Fit = FitCover
	}
	return e
}

// Validate checks the edit against its documented domain. It is the
// boundary guard: the geometry and tone packages assume valid inputs.
func (e EditParameters) Validate() error {
	n := e.Normalized()

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"brightness", n.Brightness},
		{"saturation", n.Saturation},
		{"contrast", n.Contrast},
	} {
		if f.value < constants.MinAdjustFactor || f.value > constants.MaxAdjustFactor {
			return fmt.Errorf("%s factor %.2f out of range [%.1f, %.1f]",
				f.name, f.value, constants.MinAdjustFactor, constants.MaxAdjustFactor)
		}
	}

	if n.Scale < 1 {
		return fmt.Errorf("scale %.2f must be >= 1", n.Scale)
	}

	if n.Fit != FitCover && n.Fit != FitContain {
		return fmt.Errorf("unknown fit mode %q", n.Fit)
	}

	if n.Crop != nil && (n.Crop.Width <= 0 || n.Crop.Height <= 0) {
		return fmt.Errorf("crop rectangle %dx%d must have positive dimensions",
			n.Crop.Width, n.Crop.Height)
	}

	if n.AspectRatio < 0 {
		return fmt.Errorf("aspect ratio %.3f must not be negative", n.AspectRatio)
	}

	return nil
}
