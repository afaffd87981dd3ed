// Package storage writes invoice PDFs to the public upload directory and,
// optionally, a dated archive tree.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"laundrybill/pkg/dateutil"
)

const (
	pdfExt       = ".pdf"
	editedSuffix = "_Edited"
)

// Archive stores PDFs under uploadDir and mirrors them into
// exportRoot/YYYY/MM/DD when exportRoot is set.
type Archive struct {
	uploadDir  string
	exportRoot string
	loc        *time.Location
}

// Saved describes where a document was written.
type Saved struct {
	FileName    string
	LocalPath   string
	ArchivePath string
}

// NewArchive creates the upload directory if needed.
func NewArchive(uploadDir, exportRoot string, loc *time.Location) (*Archive, error) {
	if uploadDir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Archive{uploadDir: uploadDir, exportRoot: exportRoot, loc: loc}, nil
}

// UploadDir returns the directory served under /uploads.
func (a *Archive) UploadDir() string {
	return a.uploadDir
}

// Save writes data as name. The archive copy is dated by at in the archive location.
func (a *Archive) Save(name string, data []byte, at time.Time) (Saved, error) {
	saved := Saved{FileName: name, LocalPath: filepath.Join(a.uploadDir, name)}
	if err := os.WriteFile(saved.LocalPath, data, 0o644); err != nil {
		return Saved{}, fmt.Errorf("write upload: %w", err)
	}

	if a.exportRoot == "" {
		return saved, nil
	}
	year, month, day := dateutil.ArchiveDir(at, a.loc)
	dir := filepath.Join(a.exportRoot, year, month, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Saved{}, fmt.Errorf("create archive dir: %w", err)
	}
	saved.ArchivePath = filepath.Join(dir, name)
	if err := os.WriteFile(saved.ArchivePath, data, 0o644); err != nil {
		return Saved{}, fmt.Errorf("write archive: %w", err)
	}
	return saved, nil
}

// FileName resolves the stored name for an upload. Only the base of requested
// is kept, ".pdf" is enforced and edited documents get "_Edited" before the
// extension. An empty request falls back to Bill_<unix millis>.pdf.
func FileName(requested string, edited bool, now time.Time) string {
	name := strings.TrimSpace(requested)
	if name != "" {
		name = filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, `\`, "/")))
	}
	if name == "" || name == "/" || name == "." {
		name = fmt.Sprintf("Bill_%d%s", now.UnixMilli(), pdfExt)
	}

	base := name
	if strings.HasSuffix(strings.ToLower(base), pdfExt) {
		base = base[:len(base)-len(pdfExt)]
	}
	if edited && !strings.HasSuffix(base, editedSuffix) {
		base += editedSuffix
	}
	return base + pdfExt
}
