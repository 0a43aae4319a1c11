package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFile checks an upload's name and declared size against the allowed
// extensions for its content type and the configured size limit. Pure
// in-memory checks; the file itself is not opened.
func ValidateFile(filename string, size int64, allowedExtensions []string, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("file %q has no extension", filename)
	}

	allowed := false
	for _, a := range allowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("file type %s not allowed, allowed types: %s", ext, strings.Join(allowedExtensions, ", "))
	}

	if size > maxSize {
		return fmt.Errorf("file size (%.1f MB) exceeds maximum allowed size (%.1f MB)",
			float64(size)/(1<<20), float64(maxSize)/(1<<20))
	}

	return nil
}
