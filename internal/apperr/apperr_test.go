package apperr_test

import (
	"errors"
	"testing"

	"catalog-service/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindCodes(t *testing.T) {
	assert.Equal(t, "VALIDATION_FAILED", apperr.KindValidation.Code())
	assert.Equal(t, "RESOURCE_NOT_FOUND", apperr.KindNotFound.Code())
	assert.Equal(t, "DUPLICATE_RESOURCE", apperr.KindDuplicate.Code())
	assert.Equal(t, "BUSINESS_VALIDATION_FAILED", apperr.KindBusinessRule.Code())
	assert.Equal(t, "ACCESS_DENIED", apperr.KindAccessDenied.Code())
	assert.Equal(t, "INTERNAL_ERROR", apperr.KindInternal.Code())
}

func TestConstructorsFormatMessages(t *testing.T) {
	err := apperr.NotFoundf("category %s not found", "abc")
	assert.Equal(t, apperr.KindNotFound, err.Kind)
	assert.Equal(t, "category abc not found", err.Message)

	dup := apperr.Duplicatef("category named %q already exists", "Books")
	assert.Equal(t, apperr.KindDuplicate, dup.Kind)
	assert.Contains(t, dup.Error(), `"Books"`)
}

func TestInternalKeepsCauseForUnwrap(t *testing.T) {
	cause := errors.New("pq: unique_violation")
	err := apperr.Internal(cause)

	assert.Equal(t, apperr.KindInternal, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unique_violation")
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := apperr.BusinessRulef("cannot delete")
	wrapped := errorsWrap(inner)

	var appErr *apperr.Error
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, apperr.KindBusinessRule, appErr.Kind)
}

func errorsWrap(err error) error {
	return wrapped{err}
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }
