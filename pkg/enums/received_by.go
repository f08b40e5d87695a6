package enums

import "fmt"

// ReceivedBy identifies which location took the shoes into service.
type ReceivedBy string

const (
	ReceivedByTakeTwo   ReceivedBy = "taketwo"
	ReceivedByGameville ReceivedBy = "gameville"
)

var validReceivedBy = []ReceivedBy{
	ReceivedByTakeTwo,
	ReceivedByGameville,
}

func (r ReceivedBy) String() string {
	return string(r)
}

func (r ReceivedBy) IsValid() bool {
	for _, candidate := range validReceivedBy {
		if candidate == r {
			return true
		}
	}
	return false
}

func ParseReceivedBy(value string) (ReceivedBy, error) {
	for _, candidate := range validReceivedBy {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid received by %q", value)
}
