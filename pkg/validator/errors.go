package validator

import "errors"

// Errors that abort a whole execution rather than failing a single field.
var (
	// ErrInvalidBound is returned when a min, max, gt or lt bound cannot be read
	// as the value type of the field.
	ErrInvalidBound = errors.New("invalid limiting rule bound")

	// ErrDirectoryNotFound is returned when a moveTo directory does not exist.
	ErrDirectoryNotFound = errors.New("relocation directory does not exist")

	// ErrFileMove is returned when an accepted upload cannot be relocated.
	ErrFileMove = errors.New("failed to move uploaded file")

	// ErrFileDetect is returned when an upload's content cannot be read for detection.
	ErrFileDetect = errors.New("failed to detect uploaded file type")

	// ErrNoUpload is returned when a file field has no upload at the given index.
	ErrNoUpload = errors.New("no upload for file field")

	// ErrNoValidator is returned when a type has no registered validator.
	ErrNoValidator = errors.New("no validator registered for type")
)
