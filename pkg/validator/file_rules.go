package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var claimedExtension = regexp.MustCompile(`\.(\w+)$`)

// validateFile checks the upload attached to the context. value is the
// client supplied file name.
func validateFile(c *Context, value string) bool {
	if !c.setup(value) {
		return c.postValidate(value, PlaceholderField)
	}

	upload, ok := c.Upload()
	if !ok {
		return c.Abort(fmt.Errorf("%w: %q index %d", ErrNoUpload, c.Field(), c.Index()))
	}

	if !checkLimits(c, float64(upload.Size), fileBound(c), PlaceholderField) {
		return c.postValidate(value, PlaceholderField)
	}

	detector := c.engine.detector
	location := upload.Location()
	detected, err := detector.Detect(location)
	if err != nil {
		return c.Abort(fmt.Errorf("%w: %q: %v", ErrFileDetect, c.Field(), err))
	}
	c.magic = detected.MagicByte

	var ext string
	switch {
	case detected.Has("txt"):
		ext = "txt"
	case claimedExtension.MatchString(value):
		ext = detector.ResolveExtension(claimedExtension.FindStringSubmatch(value)[1])
		if !detected.Has(ext) {
			c.failKey("validation.spoofing", MsgSpoofing)
			return c.postValidate(value, PlaceholderField)
		}
	case len(detected.Extensions) > 0:
		ext = detected.Extensions[0]
	}

	o := c.Options()
	if mimes := detector.ResolveExtensions(o.Mimes); len(mimes) > 0 && !slices.Contains(mimes, ext) {
		c.failKey("validation.mime", pick(o.MimeErr, fmt.Sprintf("%q file extension not accepted", "."+ext)))
		return c.postValidate(value, PlaceholderField)
	}

	if o.OverrideMime != "" {
		ext = o.OverrideMime
	}
	c.extension = ext

	if o.MoveTo != "" {
		if !relocate(c, location, ext) {
			return false
		}
	}

	return c.postValidate(value, PlaceholderField)
}

// relocate renames the upload into the moveTo directory under a random name.
func relocate(c *Context, from, ext string) bool {
	o := c.Options()
	dir := strings.TrimRight(o.MoveTo, "/")
	if dir == "" {
		dir = "/"
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return c.Abort(fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir))
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + "." + ext
	to := filepath.Join(dir, name)
	if err := os.Rename(from, to); err != nil {
		return c.Abort(fmt.Errorf("%w: %s: %v", ErrFileMove, pick(o.MoveErr, MsgMove), err))
	}

	c.fileName = name
	c.filePath = to
	return true
}
