package file

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MagicLength is the number of leading bytes reported as the magic byte signature.
const MagicLength = 8

// Detection is the result of inspecting a file's content.
type Detection struct {
	// Extensions are the candidate extensions, most specific first, without dots.
	Extensions []string
	// MIME is the detected media type.
	MIME string
	// MagicByte is the hex encoded leading bytes of the file.
	MagicByte string
}

// Has reports whether ext is among the candidates.
func (d Detection) Has(ext string) bool {
	return slices.Contains(d.Extensions, ext)
}

// Detector inspects files by content and normalizes extension names.
// Implementations must be safe for concurrent use.
type Detector interface {
	Detect(path string) (Detection, error)
	ResolveExtension(ext string) string
	ResolveExtensions(exts []string) []string
}

// extensionAliases maps alternative spellings to the extension detection reports.
var extensionAliases = map[string]string{
	"jpeg": "jpg",
	"jpe":  "jpg",
	"jfif": "jpg",
	"tif":  "tiff",
	"htm":  "html",
	"mpeg": "mpg",
	"mpga": "mp3",
	"oga":  "ogg",
	"text": "txt",
	"yml":  "yaml",
	"midi": "mid",
	"3gpp": "3gp",
	"qt":   "mov",
	"svgz": "svg",
	"tgz":  "gz",
}

// MimeDetector detects files by their content signature.
type MimeDetector struct {
	aliases map[string]string
}

// DetectorOption configures a MimeDetector.
type DetectorOption func(*MimeDetector)

// WithAlias adds an extension alias.
func WithAlias(alias, ext string) DetectorOption {
	return func(d *MimeDetector) {
		d.aliases[normalizeExt(alias)] = normalizeExt(ext)
	}
}

// NewDetector creates the default content based detector.
func NewDetector(opts ...DetectorOption) *MimeDetector {
	d := &MimeDetector{aliases: make(map[string]string, len(extensionAliases))}
	for k, v := range extensionAliases {
		d.aliases[k] = v
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the candidate extensions of the file at path. The detected
// type comes first, followed by the extensions of its parent types. Plain
// text content yields only "txt".
func (d *MimeDetector) Detect(path string) (Detection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrFailedToDetectMIMEType, err)
	}

	magic, err := readMagic(f)
	if err != nil {
		return Detection{}, err
	}

	out := Detection{MIME: mtype.String(), MagicByte: magic}
	if mtype.Is("text/plain") {
		out.Extensions = []string{"txt"}
		return out, nil
	}

	for m := mtype; m != nil; m = m.Parent() {
		ext := d.ResolveExtension(m.Extension())
		if ext != "" && !slices.Contains(out.Extensions, ext) {
			out.Extensions = append(out.Extensions, ext)
		}
	}
	if len(out.Extensions) == 0 {
		out.Extensions = []string{"bin"}
	}
	return out, nil
}

// ResolveExtension lowercases ext, strips a leading dot and maps aliases.
func (d *MimeDetector) ResolveExtension(ext string) string {
	ext = normalizeExt(ext)
	if alias, ok := d.aliases[ext]; ok {
		return alias
	}
	return ext
}

// ResolveExtensions resolves every extension of the list.
func (d *MimeDetector) ResolveExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if r := d.ResolveExtension(ext); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func readMagic(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	buf := make([]byte, MagicLength)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return hex.EncodeToString(buf[:n]), nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
