// Package storage stores uploaded supporting documents and hands back the
// path recorded on the deductee.
package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DocumentStore saves one uploaded document and returns the reference to
// persist (a /uploads path for the local driver, a full URL for S3).
type DocumentStore interface {
	Save(filename string, content io.Reader) (string, error)
}

// allowedExtensions are the document types the client submission accepts.
var allowedExtensions = []string{".png", ".jpg", ".jpeg", ".pdf"}

// ValidateExtension checks the uploaded filename against the accepted
// document types.
func ValidateExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type %s is not allowed", ext)
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}
