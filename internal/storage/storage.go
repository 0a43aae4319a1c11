package storage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/paramparahq/parampara/internal/model"
)

// ErrFileTooLarge is returned before any byte is written when an artifact's
// size exceeds the configured maximum.
var ErrFileTooLarge = errors.New("file exceeds maximum upload size")

// Artifact describes one uploaded file to be stored.
type Artifact struct {
	OwnerID      string
	OriginalName string
	ContentType  model.ContentType
	Size         int64 // declared size in bytes
	Content      io.Reader
}

// Store persists raw uploaded artifacts and returns a stable reference.
type Store interface {
	// Save writes the artifact and returns its storage path and the number
	// of bytes actually written.
	Save(artifact Artifact) (path string, size int64, err error)

	// Delete removes a previously stored artifact (best effort cleanup).
	Delete(path string) error
}

// subdirs routes each content type into its own directory.
var subdirs = map[model.ContentType]string{
	model.ContentImage: "images",
	model.ContentAudio: "audio",
	model.ContentVideo: "videos",
	model.ContentText:  "documents",
}

func subdirFor(t model.ContentType) string {
	if d, ok := subdirs[t]; ok {
		return d
	}
	return "documents"
}

// artifactName builds a run-unique file name from the owner, a timestamp and
// the original name, so concurrent uploads never collide on a destination.
func artifactName(ownerID, originalName string, now time.Time) string {
	base := filepath.Base(originalName)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s_%s_%s", ownerID, now.Format("20060102_150405.000000000"), base)
}
