package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "[E3001] not_found: Analysis not found", ErrAnalysisNotFound.Error())
}

func TestAPIError_WithDetailDoesNotMutateSentinel(t *testing.T) {
	derived := ErrAnalysisNotFound.WithDetail("analysis_id", "abc")
	assert.Nil(t, ErrAnalysisNotFound.Details)
	assert.Equal(t, "abc", derived.Details["analysis_id"])
	assert.True(t, errors.Is(derived, ErrAnalysisNotFound))
}

func TestAPIError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", ErrAnalysisLocked.WithDetail("analysis_id", "a1"))
	assert.True(t, errors.Is(wrapped, ErrAnalysisLocked))
	assert.False(t, errors.Is(wrapped, ErrAnalysisNotFound))
}

func TestAPIError_LockedDistinctFromNotFound(t *testing.T) {
	// "exists but locked" and "doesn't exist or isn't yours" must never
	// collapse into the same code.
	assert.NotEqual(t, ErrAnalysisLocked.Code, ErrAnalysisNotFound.Code)
	assert.NotEqual(t, ErrAnalysisLocked.HTTPStatus, ErrAnalysisNotFound.HTTPStatus)
}

func TestConvertToAPIError(t *testing.T) {
	assert.Equal(t, ErrForbidden, ConvertToAPIError(ErrForbidden))

	converted := ConvertToAPIError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, converted.Code)
	assert.Equal(t, "boom", converted.Message)
}
