// Package dispatch delivers validated orders into the hot-folder tree
// watched by the external print spooler. Each order is rendered and
// written at most once: an in-process per-order mutex serializes
// concurrent triggers, and the store's conditional files_copied update is
// the durable gate.
package dispatch

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fotokiosk/kiosk/internal/constants"
	"github.com/fotokiosk/kiosk/internal/formats"
	"github.com/fotokiosk/kiosk/internal/model"
	"github.com/fotokiosk/kiosk/internal/render"
	"github.com/fotokiosk/kiosk/internal/store"
)

// Progress reports per-photo dispatch progress to an optional observer.
type Progress struct {
	Current   int
	Total     int
	PhotoName string
}

// Result summarizes one dispatch run.
type Result struct {
	OrderID           string
	AlreadyDispatched bool
	FilesWritten      int // files delivered to the hot folder tree
	Fallbacks         int // photos delivered as raw copies after a render failure
	MissingSources    int // photos skipped because their source file was gone
	FailedPhotos      int // photos that could not be delivered at all
	SkippedItems      int // cart items skipped due to an unknown SKU
}

// Dispatcher renders and delivers the photos of an order.
type Dispatcher struct {
	DB       *sql.DB
	Registry *formats.Registry
	Renderer *render.Renderer

	// PrintBasePath is the hot-folder root; one subdirectory per format.
	PrintBasePath string
	// TempUploadDir holds browser uploads. Files here survive dispatch and
	// are reclaimed by the retention sweep; sources elsewhere (USB,
	// Bluetooth) are deleted once delivered.
	TempUploadDir string
	// RenderTimeout bounds a single photo render. Zero means the default.
	RenderTimeout time.Duration

	// OnProgress, when set, is called once per photo.
	OnProgress func(Progress)

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lockOrder acquires the per-order mutex, creating it on first use.
func (d *Dispatcher) lockOrder(orderID string) func() {
	d.mu.Lock()
	if d.locks == nil {
		d.locks = make(map[string]*sync.Mutex)
	}
	m, ok := d.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		d.locks[orderID] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (d *Dispatcher) renderTimeout() time.Duration {
	if d.RenderTimeout > 0 {
		return d.RenderTimeout
	}
	return constants.DefaultRenderTimeoutSeconds * time.Second
}

// Dispatch delivers every photo of every cart item of an order into the
// per-format hot folders. Re-invoking on an already-dispatched order is a
// logged no-op. Per-photo failures (missing source, undecodable image)
// skip that photo and continue; failing to create an output directory
// aborts the order and propagates.
func (d *Dispatcher) Dispatch(ctx context.Context, orderID string) (*Result, error) {
	unlock := d.lockOrder(orderID)
	defer unlock()

	order, err := store.GetOrder(ctx, d.DB, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}

	result := &Result{OrderID: orderID}
	if order.FilesCopied {
		log.Printf("order %s already dispatched, skipping", orderID)
		result.AlreadyDispatched = true
		return result, nil
	}

	clientName := SanitizeClientName(order.ClientName)
	stamp := time.Now().Format(constants.FileNameTimestampLayout)
	total := order.PhotoCount()

	// One sequence across all items, so an order's files sort together
	// regardless of how many formats it spans.
	seq := 0
	current := 0

	for _, item := range order.Items {
		format, err := d.Registry.Lookup(item.SKU)
		if err != nil {
			log.Printf("order %s: skipping item: %v", orderID, err)
			result.SkippedItems++
			current += len(item.Photos)
			continue
		}

		outDir := filepath.Join(d.PrintBasePath, format.Folder)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return result, fmt.Errorf("creating output directory %s: %w", outDir, err)
		}

		for _, photo := range item.Photos {
			current++
			if d.OnProgress != nil {
				d.OnProgress(Progress{Current: current, Total: total, PhotoName: photo.Name})
			}

			source, err := photo.ResolveSource(d.TempUploadDir)
			if err != nil {
				log.Printf("order %s: skipping photo: %v", orderID, err)
				result.MissingSources++
				continue
			}

			seq++
			target := filepath.Join(outDir, fmt.Sprintf("%s_%s_%03d.jpg", clientName, stamp, seq))

			if err := d.renderTo(ctx, source, format, photo.EditParams, target); err != nil {
				// Degraded mode: deliver the untouched source bytes so
				// something prints rather than nothing.
				log.Printf("order %s: render failed for %s, falling back to raw copy: %v",
					orderID, photo.Name, err)
				if copyErr := copyFile(source, target); copyErr != nil {
					log.Printf("order %s: raw copy failed for %s: %v", orderID, photo.Name, copyErr)
					result.FailedPhotos++
					continue
				}
				result.Fallbacks++
			}
			result.FilesWritten++

			if !photo.IsTempUpload(d.TempUploadDir) {
				// USB/Bluetooth imports: free the transient copy now that
				// the print file exists.
				if err := os.Remove(source); err != nil {
					log.Printf("order %s: could not remove source %s: %v", orderID, source, err)
				}
			}
		}
	}

	won, err := store.MarkFilesCopied(ctx, d.DB, orderID)
	if err != nil {
		return result, err
	}
	if !won {
		log.Printf("order %s: files_copied was already set by a concurrent dispatch", orderID)
	}
	return result, nil
}

// renderTo renders one photo to the target path under a bounded timeout.
func (d *Dispatcher) renderTo(ctx context.Context, source string, format formats.Format, edits *model.EditParameters, target string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("reading source %s: %w", source, err)
	}

	rctx, cancel := context.WithTimeout(ctx, d.renderTimeout())
	defer cancel()

	out, err := d.Renderer.Print(rctx, data, format, edits)
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// copyFile copies source to target byte for byte.
func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", target, err)
	}
	return out.Close()
}
