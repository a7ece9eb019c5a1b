package enums

import "fmt"

// ContentType maps to the content_type_enum enum in Postgres.
type ContentType string

const (
	ContentTypePost       ContentType = "post"
	ContentTypeVideo      ContentType = "video"
	ContentTypeGiig       ContentType = "giig"
	ContentTypeLivestream ContentType = "livestream"
)

var validContentTypes = []ContentType{
	ContentTypePost,
	ContentTypeVideo,
	ContentTypeGiig,
	ContentTypeLivestream,
}

// IsValid reports whether the value matches the canonical content enum.
func (t ContentType) IsValid() bool {
	for _, candidate := range validContentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func (t ContentType) String() string {
	return string(t)
}

// ParseContentType converts raw input into ContentType.
func ParseContentType(value string) (ContentType, error) {
	for _, candidate := range validContentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid content type %q", value)
}
