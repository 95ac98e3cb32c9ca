// Package formats is the single source of truth for print dimensions.
// Product CRUD may change prices and descriptions, but the SKU-to-pixel
// mapping lives here and nowhere else.
package formats

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed formats.yaml
var formatsYAML []byte

// ErrUnknownFormat is returned by Lookup for SKUs not in the registry.
var ErrUnknownFormat = errors.New("unknown print format")

// Format describes one physical print product.
type Format struct {
	SKU          string `yaml:"-"`
	Folder       string `yaml:"folder"` // hot-folder subdirectory name
	ImageWidth   int    `yaml:"imageWidth"`
	ImageHeight  int    `yaml:"imageHeight"`
	CanvasWidth  int    `yaml:"canvasWidth"`
	CanvasHeight int    `yaml:"canvasHeight"`
	Price        int    `yaml:"price"`   // cents, per photo or per pair
	PerPair      bool   `yaml:"perPair"` // bill per pair of photos, ceiling-divided
}

// AspectRatio returns the image area width/height ratio.
func (f Format) AspectRatio() float64 {
	return float64(f.ImageWidth) / float64(f.ImageHeight)
}

// IsLandscape reports whether the image area is wider than tall.
func (f Format) IsLandscape() bool {
	return f.ImageWidth > f.ImageHeight
}

// Subtotal computes the price in cents for the given number of photos.
// Per-pair SKUs bill ceil(n/2) pairs.
func (f Format) Subtotal(photoCount int) int {
	if photoCount <= 0 {
		return 0
	}
	if f.PerPair {
		return (photoCount + 1) / 2 * f.Price
	}
	return photoCount * f.Price
}

// Registry maps product SKUs to print formats. It is injected into the
// dispatcher and renderer rather than accessed as a package global, so
// tests and per-deployment customizations can swap the table.
type Registry struct {
	formats map[string]Format
}

// Load parses the embedded formats.yaml into a registry.
func Load() (*Registry, error) {
	var doc struct {
		Formats map[string]Format `yaml:"formats"`
	}
	if err := yaml.Unmarshal(formatsYAML, &doc); err != nil {
		return nil, fmt.Errorf("parsing embedded formats.yaml: %w", err)
	}
	return New(doc.Formats), nil
}

// New builds a registry from an explicit SKU-to-format map.
func New(entries map[string]Format) *Registry {
	formats := make(map[string]Format, len(entries))
	for sku, f := range entries {
		f.SKU = sku
		formats[sku] = f
	}
	return &Registry{formats: formats}
}

// Lookup returns the format for a SKU.
func (r *Registry) Lookup(sku string) (Format, error) {
	f, ok := r.formats[sku]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, sku)
	}
	return f, nil
}

// All returns every registered format sorted by SKU.
func (r *Registry) All() []Format {
	all := make([]Format, 0, len(r.formats))
	for _, f := range r.formats {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	return all
}
