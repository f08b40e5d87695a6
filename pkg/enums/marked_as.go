package enums

import "fmt"

// MarkedAs is a post-completion payment/delivery tag, orthogonal to the
// workflow status.
type MarkedAs string

const (
	MarkedAsPaidDelivered MarkedAs = "paid_delivered"
	MarkedAsPaid          MarkedAs = "paid"
	MarkedAsDelivered     MarkedAs = "delivered"
	MarkedAsInProgress    MarkedAs = "in_progress"
)

var validMarkedAs = []MarkedAs{
	MarkedAsPaidDelivered,
	MarkedAsPaid,
	MarkedAsDelivered,
	MarkedAsInProgress,
}

func (m MarkedAs) String() string {
	return string(m)
}

func (m MarkedAs) IsValid() bool {
	for _, candidate := range validMarkedAs {
		if candidate == m {
			return true
		}
	}
	return false
}

func ParseMarkedAs(value string) (MarkedAs, error) {
	for _, candidate := range validMarkedAs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid marked-as tag %q", value)
}
