package formhandler

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/formhandler/pkg/binder"
	"github.com/dmitrymomot/formhandler/pkg/file"
	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// DataSource maps field names to raw submitted values: strings, string
// slices or any scalar.
type DataSource map[string]any

// DataFromValues converts url.Values. Single values become strings.
func DataFromValues(v url.Values) DataSource {
	return DataSource(binder.Values(v))
}

// FromRequest reads the data and files sources of an HTTP request.
// Uploads are spooled into dir; remove them with Source.Remove when done.
func FromRequest(r *http.Request, dir string) (DataSource, file.Source, error) {
	data, files, err := binder.Request(r, dir)
	if err != nil {
		return nil, nil, err
	}
	return DataSource(data), files, nil
}

// Lookup returns the text form of a field's raw value.
func (d DataSource) Lookup(field string) (string, bool) {
	v, ok := d[field]
	if !ok {
		return "", false
	}
	return rules.Stringify(v), true
}

// elements splits a raw value into the strings validated one by one.
// multi reports whether the value was submitted as a list.
func elements(raw any) (values []string, multi bool) {
	switch t := raw.(type) {
	case nil:
		return nil, false
	case string:
		return []string{t}, false
	case []string:
		return t, true
	case []any:
		out := make([]string, len(t))
		for i, v := range t {
			out[i] = rules.Stringify(v)
		}
		return out, true
	}
	return []string{rules.Stringify(raw)}, false
}

// isEmpty reports whether no element carries a value.
func isEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
