package dispatch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Sweep removes files in the temp upload directory older than maxAge,
// independent of any order's status. Subdirectories are left alone.
// Returns the number of files removed.
func Sweep(tempUploadDir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(tempUploadDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading temp upload directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("sweep: stat %s: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(tempUploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("sweep: remove %s: %v", path, err)
			continue
		}
		removed++
	}

	return removed, nil
}
