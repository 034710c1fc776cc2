package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSentinelStatusCodes(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{ErrInvalidInput, StatusBadRequest},
		{ErrInvalidFormat, StatusBadRequest},
		{ErrNotFound, StatusNotFound},
		{ErrForbidden, StatusForbidden},
		{ErrConflict, StatusConflict},
		{ErrDatabase, StatusInternalServerError},
		{ErrUploadFailed, StatusInternalServerError},
	}
	for _, tc := range cases {
		var appErr *Error
		assert.True(t, errors.As(tc.err, &appErr))
		assert.Equal(t, tc.expected, appErr.StatusCode)
	}
}

func TestErrorsIsOnSentinels(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))

	// A missing document is a normal outcome, never a 500.
	assert.ErrorIs(t, ConvertMongoError(mongo.ErrNoDocuments), ErrNotFound)

	// Already-converted errors pass through untouched.
	assert.ErrorIs(t, ConvertMongoError(ErrNotFound), ErrNotFound)
	assert.ErrorIs(t, ConvertMongoError(ErrConflict), ErrConflict)

	// Anything else maps to an opaque database error.
	var appErr *Error
	converted := ConvertMongoError(errors.New("socket closed"))
	assert.True(t, errors.As(converted, &appErr))
	assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, MsgDatabaseError, appErr.Message)
}
