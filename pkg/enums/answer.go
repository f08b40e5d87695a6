package enums

import "fmt"

// Answer is a yes/no workflow question that may not have been asked yet.
// The zero value is AnswerUnset.
type Answer string

const (
	AnswerUnset Answer = ""
	AnswerYes   Answer = "yes"
	AnswerNo    Answer = "no"
)

// String implements fmt.Stringer.
func (a Answer) String() string {
	return string(a)
}

// IsValid reports whether the value is a known Answer, including unset.
func (a Answer) IsValid() bool {
	switch a {
	case AnswerUnset, AnswerYes, AnswerNo:
		return true
	}
	return false
}

// Answered reports whether the question has been resolved either way.
func (a Answer) Answered() bool {
	return a == AnswerYes || a == AnswerNo
}

// ParseAnswer converts raw input into an Answer. Empty input is AnswerUnset.
func ParseAnswer(value string) (Answer, error) {
	switch Answer(value) {
	case AnswerUnset:
		return AnswerUnset, nil
	case AnswerYes:
		return AnswerYes, nil
	case AnswerNo:
		return AnswerNo, nil
	}
	return "", fmt.Errorf("invalid answer %q", value)
}
