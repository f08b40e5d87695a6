package enums

import "fmt"

// EntryStatus tracks a service entry through its workflow lifecycle.
type EntryStatus string

const (
	EntryStatusPending               EntryStatus = "pending"
	EntryStatusSubstantialCompletion EntryStatus = "substantial_completion"
	EntryStatusCompleted             EntryStatus = "completed"
)

var validEntryStatuses = []EntryStatus{
	EntryStatusPending,
	EntryStatusSubstantialCompletion,
	EntryStatusCompleted,
}

// entryStatusOrder fixes the forward-only progression of the lifecycle.
var entryStatusOrder = map[EntryStatus]int{
	EntryStatusPending:               0,
	EntryStatusSubstantialCompletion: 1,
	EntryStatusCompleted:             2,
}

// String implements fmt.Stringer.
func (s EntryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known EntryStatus.
func (s EntryStatus) IsValid() bool {
	for _, candidate := range validEntryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanAdvanceTo reports whether target is the immediate next status. Status
// moves only forward and only one step at a time.
func (s EntryStatus) CanAdvanceTo(target EntryStatus) bool {
	from, ok := entryStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := entryStatusOrder[target]
	if !ok {
		return false
	}
	return to == from+1
}

// ParseEntryStatus converts raw input into an EntryStatus.
func ParseEntryStatus(value string) (EntryStatus, error) {
	for _, candidate := range validEntryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entry status %q", value)
}
