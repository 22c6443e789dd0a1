package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrNotFound, "looking up record abc123")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrDuplicate))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrDuplicate,
		ErrInvalidRequest,
		ErrInvalidCriteria,
		ErrUnparseable,
		ErrConflictingFilters,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "sentinel %v should not match %v", a, b)
		}
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{"not found direct", ErrNotFound, IsNotFoundError, true},
		{"not found wrapped", Wrap(ErrNotFound, "context"), IsNotFoundError, true},
		{"not found mismatch", ErrDuplicate, IsNotFoundError, false},
		{"duplicate wrapped", Wrapf(ErrDuplicate, "value %q", "hello"), IsDuplicateError, true},
		{"invalid request", NewInvalidRequestError("bad body"), IsInvalidRequestError, true},
		{"invalid criteria", NewInvalidCriteriaError("min_length", "not an integer"), IsInvalidCriteriaError, true},
		{"unparseable", Wrap(ErrUnparseable, "phrase"), IsUnparseableError, true},
		{"conflicting filters", Wrap(ErrConflictingFilters, "min 20 max 5"), IsConflictingFiltersError, true},
		{"unparseable is not conflicting", ErrUnparseable, IsConflictingFiltersError, false},
		{"conflicting is not unparseable", ErrConflictingFilters, IsUnparseableError, false},
		{"nil error", nil, IsNotFoundError, false},
		{"plain error", fmt.Errorf("plain"), IsNotFoundError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checker(tt.err))
		})
	}
}

func TestNewInvalidCriteriaErrorNamesField(t *testing.T) {
	err := NewInvalidCriteriaError("word_count", "%q is not an integer", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word_count")
	assert.Contains(t, err.Error(), "abc")
	assert.True(t, Is(err, ErrInvalidCriteria))
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrUnparseable, "try phrases like 'longer than 10'")
	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "longer than 10")
}
