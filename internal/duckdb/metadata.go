package duckdb

import (
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a scanned input file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
// Stdin ("-") yields a fingerprint with only the path set.
func StatFile(path string) (FileFingerprint, error) {
	if path == "-" {
		return FileFingerprint{Path: path}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
