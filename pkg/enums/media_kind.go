package enums

import "fmt"

// MediaKind classifies an uploaded file.
type MediaKind string

const (
	MediaKindBefore MediaKind = "before"
	MediaKindAfter  MediaKind = "after"
	MediaKindWaiver MediaKind = "waiver"
)

var validMediaKinds = []MediaKind{
	MediaKindBefore,
	MediaKindAfter,
	MediaKindWaiver,
}

func (k MediaKind) String() string {
	return string(k)
}

func (k MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}
