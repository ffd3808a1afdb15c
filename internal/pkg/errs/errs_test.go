//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"kyren/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark_SentinelVisibleToErrorsIs(t *testing.T) {
	cause := errs.New("version check failed")
	marked := errs.Mark(cause, errs.ErrConcurrencyConflict)

	assert.ErrorIs(t, marked, errs.ErrConcurrencyConflict)
	assert.ErrorIs(t, marked, cause)
}

func TestMark_NilErrorYieldsBareSentinel(t *testing.T) {
	marked := errs.Mark(nil, errs.ErrGroupNotFound)

	assert.True(t, errors.Is(marked, errs.ErrGroupNotFound))
}

func TestMark_StacksAcrossRepeatedMarks(t *testing.T) {
	cause := errs.New("group is full")
	marked := errs.Mark(errs.Mark(cause, errs.ErrGroupAlreadyClosed), errs.ErrConcurrencyConflict)

	assert.ErrorIs(t, marked, errs.ErrConcurrencyConflict)
	assert.ErrorIs(t, marked, errs.ErrGroupAlreadyClosed)
	assert.ErrorIs(t, marked, cause)
}
