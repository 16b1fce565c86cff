package rules

// Type identifies the validator a field is dispatched to.
type Type string

const (
	TypeText     Type = "text"
	TypeTitle    Type = "title"
	TypeName     Type = "name"
	TypeEmail    Type = "email"
	TypeURL      Type = "url"
	TypePassword Type = "password"
	TypeCheckbox Type = "checkbox"
	TypeBoolean  Type = "boolean"

	TypeInt     Type = "int"
	TypePInt    Type = "pInt"
	TypeNInt    Type = "nInt"
	TypeNumber  Type = "number"
	TypePNumber Type = "pNumber"
	TypeNNumber Type = "nNumber"
	TypeMoney   Type = "money"

	TypeDate   Type = "date"
	TypeChoice Type = "choice"
	TypeRange  Type = "range"

	TypeFile     Type = "file"
	TypeImage    Type = "image"
	TypeAudio    Type = "audio"
	TypeVideo    Type = "video"
	TypeMedia    Type = "media"
	TypeDocument Type = "document"
	TypeArchive  Type = "archive"
)

// Types lists every declared type in a stable order.
var Types = []Type{
	TypeText, TypeTitle, TypeName, TypeEmail, TypeURL, TypePassword, TypeCheckbox, TypeBoolean,
	TypeInt, TypePInt, TypeNInt, TypeNumber, TypePNumber, TypeNNumber, TypeMoney,
	TypeDate, TypeChoice, TypeRange,
	TypeFile, TypeImage, TypeAudio, TypeVideo, TypeMedia, TypeDocument, TypeArchive,
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// IsFile reports whether fields of this type are read from the files source.
func (t Type) IsFile() bool {
	switch t {
	case TypeFile, TypeImage, TypeAudio, TypeVideo, TypeMedia, TypeDocument, TypeArchive:
		return true
	}
	return false
}

// IsBoolean reports whether the type carries a checkbox-style value.
func (t Type) IsBoolean() bool {
	return t == TypeCheckbox || t == TypeBoolean
}

// IsInteger reports whether the type parses to an integer.
func (t Type) IsInteger() bool {
	return t == TypeInt || t == TypePInt || t == TypeNInt
}

// IsNumber reports whether the type parses to a floating point number.
func (t Type) IsNumber() bool {
	return t == TypeNumber || t == TypePNumber || t == TypeNNumber || t == TypeMoney
}

// fileMimes are the default allow-lists for the file family.
var fileMimes = map[Type][]string{
	TypeImage:    {"jpg", "png", "gif", "webp", "bmp", "tiff", "ico", "svg"},
	TypeAudio:    {"mp3", "wav", "ogg", "flac", "aac", "m4a", "weba"},
	TypeVideo:    {"mp4", "webm", "mov", "avi", "mkv", "mpeg", "3gp", "ogv"},
	TypeDocument: {"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "rtf", "txt", "csv"},
	TypeArchive:  {"zip", "tar", "gz", "7z", "rar", "bz2", "xz"},
}

func init() {
	media := make([]string, 0)
	for _, t := range []Type{TypeImage, TypeAudio, TypeVideo} {
		media = append(media, fileMimes[t]...)
	}
	fileMimes[TypeMedia] = media
}

// DefaultMimes returns the default extension allow-list for a file type.
// Plain file fields accept anything and get nil.
func DefaultMimes(t Type) []string {
	m := fileMimes[t]
	if m == nil {
		return nil
	}
	out := make([]string, len(m))
	copy(out, m)
	return out
}
