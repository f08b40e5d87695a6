package workflow

import (
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"

	"github.com/taketwocare/solecare-backend/pkg/enums"
)

// RuleIncompleteServiceSteps is reported when release is requested before
// the tend-flow questions gate it open.
const RuleIncompleteServiceSteps = "incomplete-service-steps"

// ServiceState holds the tend-flow answers for an entry still in service.
// It is a plain value: evaluation never mutates it and nothing is cached
// between evaluations.
type ServiceState struct {
	ReceivedBy    *enums.ReceivedBy  `json:"received_by,omitempty"`
	ShoeClean     enums.Answer       `json:"shoe_clean"`
	ServiceType   *enums.ServiceType `json:"service_type,omitempty"`
	BasicCleaning enums.Answer       `json:"basic_cleaning"`
	NeedsReglue   bool               `json:"needs_reglue"`
	NeedsPaint    bool               `json:"needs_paint"`
	QCPassed      bool               `json:"qc_passed"`
}

// Visibility describes which follow-up questions are live for the current
// answers, so callers don't have to re-derive the show/hide order.
type Visibility struct {
	BasicCleaning bool `json:"basic_cleaning"`
	ServiceType   bool `json:"service_type"`
	QC            bool `json:"qc"`
}

// ReleaseEligible is the release gate as a decision table over the service
// answers. NeedsReglue and NeedsPaint are record-keeping flags and never
// take part in the decision.
//
//	received_by  shoe_clean  basic_cleaning  service_type  | gate
//	unset        *           *               *             | false
//	set          unset       *               *             | false
//	set          yes         *               *             | qc_passed
//	set          no          unset           *             | false
//	set          no          yes             *             | qc_passed
//	set          no          no              unset         | false
//	set          no          no              set           | qc_passed
func ReleaseEligible(state ServiceState) bool {
	if state.ReceivedBy == nil || !state.ReceivedBy.IsValid() {
		return false
	}

	switch state.ShoeClean {
	case enums.AnswerYes:
		return state.QCPassed
	case enums.AnswerNo:
		switch state.BasicCleaning {
		case enums.AnswerYes:
			return state.QCPassed
		case enums.AnswerNo:
			return state.ServiceType != nil && state.ServiceType.IsValid() && state.QCPassed
		default:
			return false
		}
	default:
		return false
	}
}

// FieldVisibility reports which questions the current answers unlock.
func FieldVisibility(state ServiceState) Visibility {
	vis := Visibility{}
	if state.ShoeClean == enums.AnswerNo {
		vis.BasicCleaning = true
		if state.BasicCleaning == enums.AnswerNo {
			vis.ServiceType = true
		}
	}
	vis.QC = qcReachable(state)
	return vis
}

// qcReachable mirrors the gate paths up to the QC question itself.
func qcReachable(state ServiceState) bool {
	switch state.ShoeClean {
	case enums.AnswerYes:
		return true
	case enums.AnswerNo:
		if state.BasicCleaning == enums.AnswerYes {
			return true
		}
		return state.BasicCleaning == enums.AnswerNo && state.ServiceType != nil
	default:
		return false
	}
}

// RequestRelease checks the gate and fails with a validation error carrying
// the incomplete-service-steps rule when the entry may not leave service yet.
func RequestRelease(state ServiceState) error {
	if !ReleaseEligible(state) {
		return pkgerrors.Validation("service steps incomplete", []string{RuleIncompleteServiceSteps})
	}
	return nil
}
