package types

// StringList is an ordered list of strings stored as a JSON column. Photo
// URLs and selected service names keep the order the client submitted them
// in; the backend never reorders.
type StringList []string

// Clone returns a copy so callers can mutate without aliasing the original.
func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}

// NonEmpty reports whether the list has at least one non-blank element.
func (l StringList) NonEmpty() bool {
	for _, v := range l {
		if v != "" {
			return true
		}
	}
	return false
}
