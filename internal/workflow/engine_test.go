package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
)

func receivedBy(v enums.ReceivedBy) *enums.ReceivedBy { return &v }

func serviceType(v enums.ServiceType) *enums.ServiceType { return &v }

func TestReleaseEligibleDecisionTable(t *testing.T) {
	takeTwo := receivedBy(enums.ReceivedByTakeTwo)
	restoration := serviceType(enums.ServiceTypeRestoration)

	tests := []struct {
		name  string
		state ServiceState
		want  bool
	}{
		{
			name:  "received by unset blocks everything",
			state: ServiceState{ShoeClean: enums.AnswerYes, QCPassed: true},
			want:  false,
		},
		{
			name:  "shoe clean unanswered",
			state: ServiceState{ReceivedBy: takeTwo, QCPassed: true},
			want:  false,
		},
		{
			name:  "clean shoe waits on qc",
			state: ServiceState{ReceivedBy: takeTwo, ShoeClean: enums.AnswerYes},
			want:  false,
		},
		{
			name:  "clean shoe with qc passes",
			state: ServiceState{ReceivedBy: takeTwo, ShoeClean: enums.AnswerYes, QCPassed: true},
			want:  true,
		},
		{
			name: "clean shoe ignores service type and basic cleaning",
			state: ServiceState{
				ReceivedBy:    takeTwo,
				ShoeClean:     enums.AnswerYes,
				ServiceType:   restoration,
				BasicCleaning: enums.AnswerNo,
				QCPassed:      true,
			},
			want: true,
		},
		{
			name:  "dirty shoe with basic cleaning unanswered",
			state: ServiceState{ReceivedBy: takeTwo, ShoeClean: enums.AnswerNo, QCPassed: true},
			want:  false,
		},
		{
			name: "dirty shoe with basic cleaning and qc",
			state: ServiceState{
				ReceivedBy:    takeTwo,
				ShoeClean:     enums.AnswerNo,
				BasicCleaning: enums.AnswerYes,
				QCPassed:      true,
			},
			want: true,
		},
		{
			name: "dirty shoe with basic cleaning but no qc",
			state: ServiceState{
				ReceivedBy:    takeTwo,
				ShoeClean:     enums.AnswerNo,
				BasicCleaning: enums.AnswerYes,
			},
			want: false,
		},
		{
			name: "full service needs a service type",
			state: ServiceState{
				ReceivedBy:    takeTwo,
				ShoeClean:     enums.AnswerNo,
				BasicCleaning: enums.AnswerNo,
				QCPassed:      true,
			},
			want: false,
		},
		{
			name: "full service with type but no qc",
			state: ServiceState{
				ReceivedBy:    takeTwo,
				ShoeClean:     enums.AnswerNo,
				BasicCleaning: enums.AnswerNo,
				ServiceType:   restoration,
			},
			want: false,
		},
		{
			name: "full service with type and qc",
			state: ServiceState{
				ReceivedBy:    receivedBy(enums.ReceivedByGameville),
				ShoeClean:     enums.AnswerNo,
				BasicCleaning: enums.AnswerNo,
				ServiceType:   serviceType(enums.ServiceTypeDeepCleaning),
				QCPassed:      true,
			},
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReleaseEligible(tc.state))
		})
	}
}

// The reglue/paint flags are record-keeping only; flipping them must never
// change the gate, whatever the rest of the state looks like.
func TestReleaseEligibleIgnoresOptionalFlags(t *testing.T) {
	states := []ServiceState{
		{ReceivedBy: receivedBy(enums.ReceivedByTakeTwo), ShoeClean: enums.AnswerYes, QCPassed: true},
		{ReceivedBy: receivedBy(enums.ReceivedByTakeTwo), ShoeClean: enums.AnswerYes},
		{ReceivedBy: receivedBy(enums.ReceivedByGameville), ShoeClean: enums.AnswerNo, BasicCleaning: enums.AnswerYes, QCPassed: true},
		{ReceivedBy: receivedBy(enums.ReceivedByGameville), ShoeClean: enums.AnswerNo, BasicCleaning: enums.AnswerNo},
		{},
	}

	for _, base := range states {
		want := ReleaseEligible(base)
		for _, reglue := range []bool{false, true} {
			for _, paint := range []bool{false, true} {
				state := base
				state.NeedsReglue = reglue
				state.NeedsPaint = paint
				assert.Equal(t, want, ReleaseEligible(state))
			}
		}
	}
}

func TestFieldVisibility(t *testing.T) {
	takeTwo := receivedBy(enums.ReceivedByTakeTwo)

	t.Run("nothing visible before shoe clean answered", func(t *testing.T) {
		vis := FieldVisibility(ServiceState{ReceivedBy: takeTwo})
		assert.False(t, vis.BasicCleaning)
		assert.False(t, vis.ServiceType)
		assert.False(t, vis.QC)
	})

	t.Run("clean shoe goes straight to qc", func(t *testing.T) {
		vis := FieldVisibility(ServiceState{ReceivedBy: takeTwo, ShoeClean: enums.AnswerYes})
		assert.False(t, vis.BasicCleaning)
		assert.False(t, vis.ServiceType)
		assert.True(t, vis.QC)
	})

	t.Run("dirty shoe asks about basic cleaning", func(t *testing.T) {
		vis := FieldVisibility(ServiceState{ReceivedBy: takeTwo, ShoeClean: enums.AnswerNo})
		assert.True(t, vis.BasicCleaning)
		assert.False(t, vis.ServiceType)
		assert.False(t, vis.QC)
	})

	t.Run("declined basic cleaning asks for service type", func(t *testing.T) {
		vis := FieldVisibility(ServiceState{
			ReceivedBy:    takeTwo,
			ShoeClean:     enums.AnswerNo,
			BasicCleaning: enums.AnswerNo,
		})
		assert.True(t, vis.BasicCleaning)
		assert.True(t, vis.ServiceType)
		assert.False(t, vis.QC)

		vis = FieldVisibility(ServiceState{
			ReceivedBy:    takeTwo,
			ShoeClean:     enums.AnswerNo,
			BasicCleaning: enums.AnswerNo,
			ServiceType:   serviceType(enums.ServiceTypeRestoration),
		})
		assert.True(t, vis.QC)
	})
}

func TestRequestReleaseBlocksIncompleteSteps(t *testing.T) {
	// Entry received at taketwo, shoe already clean, QC not yet passed.
	err := RequestRelease(ServiceState{
		ReceivedBy: receivedBy(enums.ReceivedByTakeTwo),
		ShoeClean:  enums.AnswerYes,
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, []string{RuleIncompleteServiceSteps}, typed.Rules())
}

func TestRequestReleasePassesWhenGateOpen(t *testing.T) {
	err := RequestRelease(ServiceState{
		ReceivedBy: receivedBy(enums.ReceivedByTakeTwo),
		ShoeClean:  enums.AnswerYes,
		QCPassed:   true,
	})
	assert.NoError(t, err)
}
