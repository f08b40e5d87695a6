package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.status, MetadataFor(tc.code).HTTPStatus)
		})
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestValidationCarriesAllRules(t *testing.T) {
	err := Validation("invalid intake", []string{"missing-phone", "missing-before-photo"})
	require.NotNil(t, err)
	assert.Equal(t, CodeValidation, err.Code())
	assert.Equal(t, []string{"missing-phone", "missing-before-photo"}, err.Rules())
}

func TestValidationWithoutRulesHasNoDetails(t *testing.T) {
	err := Validation("invalid intake", nil)
	assert.Nil(t, err.Details())
	assert.Nil(t, err.Rules())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "saving entry")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: saving entry", err.Error())
}

func TestAsUnwrapsNestedError(t *testing.T) {
	inner := New(CodeNotFound, "entry not found")
	wrapped := fmt.Errorf("handler: %w", inner)
	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())

	assert.Nil(t, As(fmt.Errorf("plain")))
	assert.Nil(t, As(nil))
}
