package images

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func dataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func TestStore_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	rel, err := store.Save(dataURL(), "recipes/images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "recipes/images/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	saved, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, saved)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.NoError(t, store.Remove("recipes/images/gone.png"))
	assert.NoError(t, store.Remove(""))
}

func TestStore_SaveRejectsGarbage(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Save("not-a-data-url", "avatars")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = store.Save("data:image/png;base64,!!!not-base64!!!", "avatars")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = store.Save("data:image/;base64,aGk=", "avatars")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/media/avatars/a.png",
		URL("http://localhost:8080/", "avatars/a.png"))
	assert.Equal(t, "", URL("http://localhost:8080", ""))
}

func TestIsDataURL(t *testing.T) {
	assert.True(t, IsDataURL(dataURL()))
	assert.False(t, IsDataURL("http://example.com/x.png"))
}
