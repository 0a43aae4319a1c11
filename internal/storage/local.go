package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes artifacts to a directory tree on local disk:
// root/{images,audio,videos,documents}/{owner}_{timestamp}_{name}.
type LocalStore struct {
	root    string
	maxSize int64
}

func NewLocalStore(root string, maxSize int64) (*LocalStore, error) {
	for _, sub := range subdirs {
		err := os.MkdirAll(filepath.Join(root, sub), 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	slog.Info("initialized local storage", "root", root, "max_size", maxSize)
	return &LocalStore{root: root, maxSize: maxSize}, nil
}

// Save writes the artifact to a temporary file in the destination directory
// and renames it into place, so a partial file is never visible under the
// final name.
func (s *LocalStore) Save(artifact Artifact) (string, int64, error) {
	if artifact.Size > s.maxSize {
		return "", 0, ErrFileTooLarge
	}

	dir := filepath.Join(s.root, subdirFor(artifact.ContentType))
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// The declared size is only a claim; enforce the limit while copying too.
	written, err := io.Copy(tmp, io.LimitReader(artifact.Content, s.maxSize+1))
	if err == nil && written > s.maxSize {
		err = ErrFileTooLarge
	}
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		removeErr := os.Remove(tmpName)
		if removeErr != nil {
			slog.Warn("failed to remove temp file", "path", tmpName, "error", removeErr)
		}
		if err == ErrFileTooLarge {
			return "", 0, err
		}
		return "", 0, fmt.Errorf("failed to write artifact: %w", err)
	}

	final := filepath.Join(dir, artifactName(artifact.OwnerID, artifact.OriginalName, time.Now()))
	err = os.Rename(tmpName, final)
	if err != nil {
		removeErr := os.Remove(tmpName)
		if removeErr != nil {
			slog.Warn("failed to remove temp file", "path", tmpName, "error", removeErr)
		}
		return "", 0, fmt.Errorf("failed to finalize artifact: %w", err)
	}

	return final, written, nil
}

func (s *LocalStore) Delete(path string) error {
	err := os.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}
