package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidDataURL = errors.New("invalid image data url")

// Store decodes a base64 data-URL ("data:image/<ext>;base64,<payload>")
// and writes it under mediaRoot/subdir with a random file name.
// Returns the path relative to mediaRoot, as stored on the entity.
type Store struct {
	mediaRoot string
}

func NewStore(mediaRoot string) *Store {
	return &Store{mediaRoot: mediaRoot}
}

func (s *Store) Save(dataURL, subdir string) (string, error) {
	ext, payload, err := splitDataURL(dataURL)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidDataURL
	}

	dir := filepath.Join(s.mediaRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes a previously stored file. A missing file is not an
// error: the reference is gone either way.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.mediaRoot, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsDataURL reports whether raw looks like a base64 image data-URL.
func IsDataURL(raw string) bool {
	return strings.HasPrefix(raw, "data:image/")
}

// URL renders the absolute URL for a stored image path, empty in → empty out.
func URL(baseURL, relPath string) string {
	if relPath == "" {
		return ""
	}
	return fmt.Sprintf("%s/media/%s", strings.TrimRight(baseURL, "/"), relPath)
}

func splitDataURL(dataURL string) (ext, payload string, err error) {
	if !IsDataURL(dataURL) {
		return "", "", ErrInvalidDataURL
	}
	rest := strings.TrimPrefix(dataURL, "data:image/")
	parts := strings.SplitN(rest, ";base64,", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidDataURL
	}
	return parts[0], parts[1], nil
}
