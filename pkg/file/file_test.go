package file_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formhandler/pkg/file"
)

func parseForm(t *testing.T, files map[string][]string) *multipart.Form {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("content of " + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		c := file.Single(file.Upload{Name: "a.png", TmpName: "/tmp/x", Size: 10, Type: "image/png"})

		require.Equal(t, 1, c.Len())
		u, ok := c.At(0)
		require.True(t, ok)
		assert.Equal(t, "a.png", u.Name)
		assert.Equal(t, "/tmp/x", u.Path)
		assert.Equal(t, "/tmp/x", u.Location())
		assert.Equal(t, int64(10), u.Size)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()
		c := file.Single(file.Upload{Name: "a.png", TmpName: "/tmp/x"})
		_, ok := c.At(1)
		assert.False(t, ok)
		_, ok = c.At(-1)
		assert.False(t, ok)
	})

	t.Run("ragged lists use the shortest", func(t *testing.T) {
		t.Parallel()
		c := file.Collection{
			Name:    []string{"a", "b"},
			TmpName: []string{"/tmp/a", "/tmp/b"},
			Size:    []int64{1},
		}
		assert.Equal(t, 1, c.Len())
		u, ok := c.At(0)
		require.True(t, ok)
		assert.Equal(t, "/tmp/a", u.Path)
		assert.Empty(t, u.Type)
	})

	t.Run("uploads", func(t *testing.T) {
		t.Parallel()
		var c file.Collection
		c.Append(file.Upload{Name: "a", TmpName: "/tmp/a", Size: 1})
		c.Append(file.Upload{Name: "b", TmpName: "/tmp/b", Path: "/srv/b", Size: 2})

		uploads := c.Uploads()
		require.Len(t, uploads, 2)
		assert.Equal(t, "/tmp/a", uploads[0].Path)
		assert.Equal(t, "/srv/b", uploads[1].Path)
	})
}

func TestFromMultipart(t *testing.T) {
	t.Parallel()

	t.Run("spools every part", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		form := parseForm(t, map[string][]string{
			"avatar": {"me.png"},
			"docs":   {"a.txt", "b.txt"},
		})

		src, err := file.FromMultipart(form, dir)
		require.NoError(t, err)
		require.Len(t, src, 2)
		assert.Equal(t, 1, src["avatar"].Len())
		assert.Equal(t, 2, src["docs"].Len())

		u, _ := src["docs"].At(1)
		assert.Equal(t, "b.txt", u.Name)
		assert.Equal(t, dir, filepath.Dir(u.TmpName))

		content, err := os.ReadFile(u.TmpName)
		require.NoError(t, err)
		assert.Equal(t, "content of b.txt", string(content))
		assert.Equal(t, int64(len(content)), u.Size)

		require.NoError(t, src.Remove())
		_, err = os.Stat(u.TmpName)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("nil form", func(t *testing.T) {
		t.Parallel()
		src, err := file.FromMultipart(nil, t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, src)
	})

	t.Run("sanitizes names", func(t *testing.T) {
		t.Parallel()
		form := parseForm(t, map[string][]string{"f": {"../../etc/passwd"}})
		src, err := file.FromMultipart(form, t.TempDir())
		require.NoError(t, err)
		u, _ := src["f"].At(0)
		assert.Equal(t, "passwd", u.Name)
	})
}

func TestSourceRemoveIgnoresMissing(t *testing.T) {
	t.Parallel()
	src := file.Source{"f": file.Single(file.Upload{Name: "a", TmpName: filepath.Join(t.TempDir(), "gone")})}
	assert.NoError(t, src.Remove())
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "photo.jpg", "photo.jpg"},
		{"unix traversal", "../../etc/passwd", "passwd"},
		{"windows traversal", "..\\..\\boot.ini", "boot.ini"},
		{"null byte", "evil\x00.php", "evil.php"},
		{"empty", "", "unnamed"},
		{"dot dot", "..", "unnamed"},
		{"slash", "/", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, file.SanitizeFilename(tt.input))
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a.png", file.Key("", "a.png"))
	assert.Equal(t, "avatars/a.png", file.Key("/avatars/", "a.png"))
	assert.Equal(t, "users/1/a.png", file.Key("users/1", "a.png"))
}
