package services

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rooluDev/goboard/apperr"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(t.TempDir(), nil)
}

func TestValidateCandidate(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name     string
		fileName string
		size     int64
		wantExt  string
		ok       bool
	}{
		{"jpg ok", "photo.jpg", 100, "jpg", true},
		{"png ok", "image.PNG", 200, "png", true},
		{"pdf ok", "doc.pdf", MaxFileSize, "pdf", true},
		{"exe rejected", "virus.exe", 100, "", false},
		{"no extension", "README", 100, "", false},
		{"trailing dot", "file.", 100, "", false},
		{"empty name", "", 100, "", false},
		{"zero size", "photo.jpg", 0, "", false},
		{"negative size", "photo.jpg", -1, "", false},
		{"over size cap", "photo.jpg", MaxFileSize + 1, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, err := store.ValidateCandidate(tc.fileName, tc.size)
			if !tc.ok {
				require.Error(t, err)
				require.True(t, apperr.IsKind(err, apperr.KindFileUpload))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantExt, ext)
		})
	}
}

func TestValidateCount(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.ValidateCount(0))
	require.NoError(t, store.ValidateCount(3))
	err := store.ValidateCount(4)
	require.True(t, apperr.IsKind(err, apperr.KindFileUpload))
}

func TestGeneratePhysicalName(t *testing.T) {
	store := newTestStore(t)
	a := store.GeneratePhysicalName("jpg")
	b := store.GeneratePhysicalName("jpg")
	require.NotEqual(t, a, b)
	require.True(t, strings.HasSuffix(a, ".jpg"))
	require.True(t, strings.HasSuffix(store.GeneratePhysicalName("PDF"), ".pdf"))
}

func TestSaveOpenRoundTrip(t *testing.T) {
	store := newTestStore(t)
	content := []byte("binary attachment payload")

	name := store.GeneratePhysicalName("jpg")
	require.NoError(t, store.Save(bytes.NewReader(content), name))

	rc, size, err := store.Open(name)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, int64(len(content)), size)

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestOpenMissingFile(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.Open("does-not-exist.jpg")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	name := store.GeneratePhysicalName("png")
	require.NoError(t, store.Save(strings.NewReader("x"), name))

	store.Delete(name)
	_, err := os.Stat(filepath.Join(store.Root(), name))
	require.True(t, os.IsNotExist(err))

	// Deleting again must not panic or fail; the file may already have been
	// cleaned up by an interrupted prior operation.
	store.Delete(name)
	store.Delete("never-existed.pdf")
}

func TestSaveCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewLocalStore(root, nil)
	require.NoError(t, store.Save(strings.NewReader("data"), "a.jpg"))
	_, err := os.Stat(filepath.Join(root, "a.jpg"))
	require.NoError(t, err)
}
