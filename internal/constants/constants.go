// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Print output constants
const (
	// JPEGQuality is the encoding quality for print-ready output files
	JPEGQuality = 95

	// PrintDPI is the pixel density tag embedded in output JPEG files.
	// The print spooler reads it to map pixels onto physical paper size.
	PrintDPI = 300

	// FileNameTimestampLayout formats the HHMM_DDMMYYYY part of output
	// file names (Go reference time: 15:04 02.01.2006)
	FileNameTimestampLayout = "1504_02012006"
)

// Preview constants
const (
	// MaxPreviewDimension bounds the longest side of editor previews.
	// Previews are fidelity-reduced; the print renderer is the system of record.
	MaxPreviewDimension = 2000
)

// Edit parameter constants
const (
	// MinAdjustFactor is the lower bound for brightness/saturation/contrast factors
	MinAdjustFactor = 0.5

	// MaxAdjustFactor is the upper bound for brightness/saturation/contrast factors
	MaxAdjustFactor = 2.0
)

// Dispatch constants
const (
	// DefaultRenderTimeoutSeconds bounds a single photo render so one oversized
	// image cannot stall the whole order
	DefaultRenderTimeoutSeconds = 60

	// RetentionDays is how long files in the temp upload directory are kept
	// before the sweep removes them, independent of order status
	RetentionDays = 3
)

// Upload constants
const (
	// MaxUploadSize is the maximum size of a multipart upload request (100 MB)
	MaxUploadSize = 100 << 20
)
