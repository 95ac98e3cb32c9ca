// Package geometry contains the pure crop/fit math shared by the preview
// and print renderers. Functions are total over their numeric domains;
// dimension validation is the caller's job.
package geometry

import "math"

// snap clears float noise from trig results so that rotations by multiples
// of 90 degrees produce exact bounding boxes.
func snap(v float64) float64 {
	const eps = 1e-12
	if math.Abs(v) < eps {
		return 0
	}
	if math.Abs(math.Abs(v)-1) < eps {
		return math.Copysign(1, v)
	}
	return v
}

// RotatedBoundingBox computes the axis-aligned bounding box of a width x
// height rectangle rotated by degrees:
//
//	w' = |cos t|*w + |sin t|*h
//	h' = |sin t|*w + |cos t|*h
//
// Used to size the intermediate canvas a rotated image is drawn on before
// cropping or compositing.
func RotatedBoundingBox(width, height, degrees float64) (float64, float64) {
	theta := degrees * math.Pi / 180
	cos := math.Abs(snap(math.Cos(theta)))
	sin := math.Abs(snap(math.Sin(theta)))
	return cos*width + sin*height, sin*width + cos*height
}

// CoverCanvas resolves the output canvas for cover fit: the output is
// exactly the crop rectangle, and the rotated image is pasted at the
// returned offset. Negative offsets (crop extending past the image edge)
// leave white padding rather than erroring; preview and print pixel grids
// round independently, so crops are not guaranteed to lie inside the source.
func CoverCanvas(cropX, cropY, cropWidth, cropHeight int) (canvasWidth, canvasHeight, offsetX, offsetY int) {
	return cropWidth, cropHeight, -cropX, -cropY
}

// ResolveContainCanvas grows the limiting dimension of the rotated bounding
// box so the canvas matches the target aspect ratio while fully containing
// the box. The image is then centered within the canvas.
func ResolveContainCanvas(bboxWidth, bboxHeight, targetAspectRatio float64) (float64, float64) {
	if bboxWidth/bboxHeight > targetAspectRatio {
		return bboxWidth, bboxWidth / targetAspectRatio
	}
	return bboxHeight * targetAspectRatio, bboxHeight
}

// SmartAspectRatio flips the requested crop ratio when it disagrees with
// the photo's natural orientation, so a portrait photo gets a portrait
// frame instead of a forced landscape crop. This is a usability heuristic;
// the config's smart-orientation flag can disable it.
func SmartAspectRatio(imageIsLandscape bool, requestedAspectRatio float64) float64 {
	if requestedAspectRatio <= 0 {
		return requestedAspectRatio
	}
	frameIsLandscape := requestedAspectRatio > 1
	if imageIsLandscape != frameIsLandscape {
		return 1 / requestedAspectRatio
	}
	return requestedAspectRatio
}

// FitScaleForRotatedContain computes the shrink factor (<= 1) that keeps a
// contain-fitted image inside its frame after a 90/270 degree rotation.
// The visual bounding box swaps width and height under such rotations but
// the frame does not, so the fitted image may overflow without shrinking.
//
// mediaRatio and targetRatio are width/height ratios; rotations that are
// not quarter turns return 1.
func FitScaleForRotatedContain(mediaRatio, targetRatio, rotationDegrees float64) float64 {
	deg := math.Mod(rotationDegrees, 360)
	if deg < 0 {
		deg += 360
	}
	if deg != 90 && deg != 270 {
		return 1
	}

	// Contain-fitted display size in frame units (frame = targetRatio x 1).
	var w, h float64
	if mediaRatio > targetRatio {
		w, h = targetRatio, targetRatio/mediaRatio
	} else {
		w, h = mediaRatio, 1
	}

	// After rotation the displayed box is h x w; scale so it still fits.
	scale := math.Min(targetRatio/h, 1/w)
	return math.Min(1, scale)
}
