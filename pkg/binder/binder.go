package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"

	"github.com/dmitrymomot/formhandler/pkg/file"
)

// DefaultMaxMemory is the part of a multipart body kept in memory (10MB).
const DefaultMaxMemory = 10 << 20

// Values flattens url.Values into raw form data. Single values become
// strings, repeated keys keep their slice.
func Values(v url.Values) map[string]any {
	out := make(map[string]any, len(v))
	for k, vals := range v {
		switch len(vals) {
		case 0:
			out[k] = ""
		case 1:
			out[k] = vals[0]
		default:
			out[k] = append([]string(nil), vals...)
		}
	}
	return out
}

// Query returns the query string parameters of r.
func Query(r *http.Request) map[string]any {
	return Values(r.URL.Query())
}

// Form parses an application/x-www-form-urlencoded request. Body values
// take precedence over query parameters with the same name.
func Form(r *http.Request) (map[string]any, error) {
	if err := expect(r, "application/x-www-form-urlencoded"); err != nil {
		return nil, err
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return Values(r.Form), nil
}

// JSON decodes a JSON object body. Numbers keep their literal text and
// nested objects are flattened to dotted keys ("roles.isAdmin").
func JSON(r *http.Request) (map[string]any, error) {
	if err := expect(r, "application/json"); err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var doc map[string]any
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}

	out := make(map[string]any, len(doc))
	flatten("", doc, out)
	return out, nil
}

// Multipart parses a multipart/form-data request. Uploaded parts are
// spooled to temporary files in dir (os.TempDir when empty); the caller
// owns them and should call Source.Remove when done.
func Multipart(r *http.Request, maxMemory int64, dir string) (map[string]any, file.Source, error) {
	if err := expect(r, "multipart/form-data"); err != nil {
		return nil, nil, err
	}
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidMultipart, err)
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	files, err := file.FromMultipart(r.MultipartForm, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidMultipart, err)
	}
	return Values(r.MultipartForm.Value), files, nil
}

// Request picks the reader matching the request content type. Requests
// without a body read the query string. The files source is empty unless
// the request is multipart.
func Request(r *http.Request, dir string) (map[string]any, file.Source, error) {
	if r.Header.Get("Content-Type") == "" {
		return Query(r), file.Source{}, nil
	}

	switch mediaType(r) {
	case "application/x-www-form-urlencoded":
		data, err := Form(r)
		return data, file.Source{}, err
	case "application/json":
		data, err := JSON(r)
		return data, file.Source{}, err
	case "multipart/form-data":
		return Multipart(r, DefaultMaxMemory, dir)
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType(r))
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func expect(r *http.Request, want string) error {
	if got := mediaType(r); got != want {
		return fmt.Errorf("%w: got %q, expected %s", ErrUnsupportedMediaType, got, want)
	}
	return nil
}

func flatten(prefix string, doc map[string]any, out map[string]any) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if nested, ok := doc[k].(map[string]any); ok {
			flatten(name, nested, out)
			continue
		}
		out[name] = doc[k]
	}
}
