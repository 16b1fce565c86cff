// Package binder reads raw form data out of HTTP requests.
//
// Each reader returns the map shape the form handler consumes: single values
// as strings, repeated keys as []string, JSON values as decoded. Multipart
// requests also produce a file.Source with every uploaded part spooled to a
// temporary file.
//
//	data, files, err := binder.Request(r, "")
//	if err != nil {
//		return err
//	}
//	defer files.Remove()
package binder
