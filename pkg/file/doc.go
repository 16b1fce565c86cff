// Package file models uploaded files and keeps accepted ones.
//
// Uploads arrive as a Source: field names mapped to a Collection of parallel
// attribute lists (name, type, temporary path, current path, size).
// FromMultipart builds a Source from a parsed multipart form by spooling every
// part to disk; Single wraps one Upload for programmatic use.
//
// Content detection goes through the Detector interface. The default
// MimeDetector sniffs the file signature and reports the detected extension
// together with the extensions of its parent types, so a caller can compare
// them with the extension the client claimed:
//
//	d := file.NewDetector()
//	res, err := d.Detect(upload.Path)
//	if err != nil {
//		return err
//	}
//	if !res.Has(d.ResolveExtension("jpeg")) {
//		// content is not a JPEG image
//	}
//
// Accepted files can be handed to a Storage. LocalStorage keeps them below a
// base directory and S3Storage puts them in a bucket:
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket: "uploads",
//		Region: "us-east-1",
//	})
//	if err != nil {
//		return err
//	}
//	stored, err := file.Store(ctx, storage, file.Key("avatars", name), upload, "image/png")
package file
