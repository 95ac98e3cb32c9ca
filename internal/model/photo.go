package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// Photo identifies one print unit inside a cart item.
//
// Exactly one of FileName or SourcePath must resolve to actual bytes at
// render time. FileName refers to a file inside the temp upload directory
// (browser uploads); SourcePath is an absolute path used for USB and
// Bluetooth imports.
type Photo struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	FileName   string          `json:"fileName,omitempty"`
	SourcePath string          `json:"sourcePath,omitempty"`
	EditParams *EditParameters `json:"editParams,omitempty"`
}

// ResolveSource returns the absolute path holding this photo's bytes.
// An explicit SourcePath wins; otherwise the photo is looked up in the
// temp upload directory. The file must exist.
func (p Photo) ResolveSource(tempUploadDir string) (string, error) {
	path := p.SourcePath
	if path == "" {
		if p.FileName == "" {
			return "", fmt.Errorf("photo %s: no source path and no file name", p.ID)
		}
		path = filepath.Join(tempUploadDir, filepath.Base(p.FileName))
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("photo %s: source %s: %w", p.ID, path, err)
	}
	return path, nil
}

// IsTempUpload reports whether the photo's bytes live in the temp upload
// directory. Temp uploads are left for the retention sweep after dispatch;
// anything else (USB/Bluetooth copies) is deleted once delivered.
func (p Photo) IsTempUpload(tempUploadDir string) bool {
	if p.SourcePath == "" {
		return true
	}
	rel, err := filepath.Rel(tempUploadDir, p.SourcePath)
	if err != nil {
		return false
	}
	return rel == filepath.Base(rel) && rel != ".."
}
