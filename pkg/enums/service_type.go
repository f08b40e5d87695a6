package enums

import "fmt"

// ServiceType is the full-service treatment chosen when basic cleaning
// is not enough.
type ServiceType string

const (
	ServiceTypeRestoration  ServiceType = "restoration"
	ServiceTypeDeepCleaning ServiceType = "deep_cleaning"
)

var validServiceTypes = []ServiceType{
	ServiceTypeRestoration,
	ServiceTypeDeepCleaning,
}

func (s ServiceType) String() string {
	return string(s)
}

func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}
