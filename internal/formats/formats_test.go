package formats

import (
	"errors"
	"testing"
)

func TestLoad_EmbeddedRegistry(t *testing.T) {
	registry, err := Load()
	if err != nil {
		t.Fatalf("loading embedded registry: %v", err)
	}

	tests := []struct {
		sku        string
		folder     string
		imgW, imgH int
	}{
		{"kiosco", "s4x6", 1200, 1800},
		{"classic", "s6x8", 1500, 2100},
		{"square-large", "s6x6", 1800, 1800},
	}

	for _, tt := range tests {
		f, err := registry.Lookup(tt.sku)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tt.sku, err)
		}
		if f.SKU != tt.sku {
			t.Errorf("%s: SKU = %q", tt.sku, f.SKU)
		}
		if f.Folder != tt.folder {
			t.Errorf("%s: folder = %q, want %q", tt.sku, f.Folder, tt.folder)
		}
		if f.ImageWidth != tt.imgW || f.ImageHeight != tt.imgH {
			t.Errorf("%s: image area %dx%d, want %dx%d",
				tt.sku, f.ImageWidth, f.ImageHeight, tt.imgW, tt.imgH)
		}
		if f.CanvasWidth < f.ImageWidth || f.CanvasHeight < f.ImageHeight {
			t.Errorf("%s: canvas %dx%d smaller than image area %dx%d",
				tt.sku, f.CanvasWidth, f.CanvasHeight, f.ImageWidth, f.ImageHeight)
		}
		if f.Price <= 0 {
			t.Errorf("%s: price %d", tt.sku, f.Price)
		}
	}
}

func TestLookup_UnknownSKU(t *testing.T) {
	registry := New(map[string]Format{"a": {Folder: "s4x6"}})

	_, err := registry.Lookup("poster-xxl")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Lookup of unknown SKU: got %v, want ErrUnknownFormat", err)
	}
}

func TestSubtotal(t *testing.T) {
	perPhoto := Format{Price: 100}
	perPair := Format{Price: 700, PerPair: true}

	tests := []struct {
		name   string
		format Format
		photos int
		want   int
	}{
		{"per photo", perPhoto, 3, 300},
		{"per photo zero", perPhoto, 0, 0},
		{"per pair even", perPair, 4, 1400},
		{"per pair odd rounds up", perPair, 3, 1400},
		{"per pair single", perPair, 1, 700},
		{"per pair negative", perPair, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.Subtotal(tt.photos); got != tt.want {
				t.Errorf("Subtotal(%d) = %d, want %d", tt.photos, got, tt.want)
			}
		})
	}
}

func TestOrientationHelpers(t *testing.T) {
	landscape := Format{ImageWidth: 1800, ImageHeight: 1200}
	portrait := Format{ImageWidth: 1200, ImageHeight: 1800}

	if !landscape.IsLandscape() || portrait.IsLandscape() {
		t.Error("IsLandscape misclassified a format")
	}
	if landscape.AspectRatio() != 1.5 {
		t.Errorf("AspectRatio = %v, want 1.5", landscape.AspectRatio())
	}
}

func TestAll_SortedBySKU(t *testing.T) {
	registry := New(map[string]Format{
		"zeta": {}, "alpha": {}, "mid": {},
	})
	all := registry.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d formats, want 3", len(all))
	}
	if all[0].SKU != "alpha" || all[1].SKU != "mid" || all[2].SKU != "zeta" {
		t.Errorf("All() not sorted: %v, %v, %v", all[0].SKU, all[1].SKU, all[2].SKU)
	}
}
