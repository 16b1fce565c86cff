package file

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Upload describes one uploaded file.
// Path is where the file currently lives; it starts equal to TmpName and
// changes when the file is relocated.
type Upload struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	TmpName string `json:"tmp_name"`
	Path    string `json:"path"`
	Size    int64  `json:"size"`
}

// Location returns Path, falling back to TmpName.
func (u Upload) Location() string {
	if u.Path != "" {
		return u.Path
	}
	return u.TmpName
}

// Collection holds the uploads of one field as parallel attribute lists.
type Collection struct {
	Name    []string `json:"name"`
	Type    []string `json:"type"`
	TmpName []string `json:"tmp_name"`
	Path    []string `json:"path"`
	Size    []int64  `json:"size"`
}

// Source maps field names to their uploads.
type Source map[string]Collection

// Single builds a one element collection.
func Single(u Upload) Collection {
	var c Collection
	c.Append(u)
	return c
}

// Len returns the number of uploads, bounded by the shortest required list.
func (c Collection) Len() int {
	return min(len(c.Name), len(c.TmpName), len(c.Size))
}

// At returns the upload at index i.
func (c Collection) At(i int) (Upload, bool) {
	if i < 0 || i >= c.Len() {
		return Upload{}, false
	}
	u := Upload{
		Name:    c.Name[i],
		TmpName: c.TmpName[i],
		Size:    c.Size[i],
	}
	if i < len(c.Type) {
		u.Type = c.Type[i]
	}
	if i < len(c.Path) {
		u.Path = c.Path[i]
	}
	if u.Path == "" {
		u.Path = u.TmpName
	}
	return u, true
}

// Uploads returns every upload of the collection.
func (c Collection) Uploads() []Upload {
	out := make([]Upload, 0, c.Len())
	for i := range c.Len() {
		u, _ := c.At(i)
		out = append(out, u)
	}
	return out
}

// Append adds an upload to the collection.
func (c *Collection) Append(u Upload) {
	c.Name = append(c.Name, u.Name)
	c.Type = append(c.Type, u.Type)
	c.TmpName = append(c.TmpName, u.TmpName)
	c.Path = append(c.Path, u.Location())
	c.Size = append(c.Size, u.Size)
}

// FromMultipart spools every file of a parsed multipart form into dir and
// returns them as a Source. An empty dir uses the system temp directory.
// Files already spooled before a failure are removed.
func FromMultipart(form *multipart.Form, dir string) (Source, error) {
	src := make(Source)
	if form == nil {
		return src, nil
	}

	var written []string
	cleanup := func() {
		for _, p := range written {
			_ = os.Remove(p)
		}
	}

	for field, headers := range form.File {
		var c Collection
		for _, fh := range headers {
			path, err := spool(fh, dir)
			if err != nil {
				cleanup()
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			written = append(written, path)
			c.Append(Upload{
				Name:    SanitizeFilename(fh.Filename),
				Type:    fh.Header.Get("Content-Type"),
				TmpName: path,
				Path:    path,
				Size:    fh.Size,
			})
		}
		src[field] = c
	}
	return src, nil
}

func spool(fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	in, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return out.Name(), nil
}

// Remove deletes the current file of every upload in the source.
// Missing files are ignored.
func (s Source) Remove() error {
	var errs []error
	for _, c := range s {
		for _, u := range c.Uploads() {
			if err := os.Remove(u.Location()); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err))
			}
		}
	}
	return errors.Join(errs...)
}

// SanitizeFilename strips directory components and null bytes from a
// client supplied file name.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
