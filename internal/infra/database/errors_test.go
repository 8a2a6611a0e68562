package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWrapErrorClassifiesDriverCodes(t *testing.T) {
	cases := []struct {
		name   string
		pqCode pq.ErrorCode
		want   string
	}{
		{"insufficient privilege", "42501", CodePermissionDenied},
		{"undefined table", "42P01", CodePreconditionFailed},
		{"undefined object", "42704", CodePreconditionFailed},
		{"admin shutdown", "57P01", CodeUnavailable},
		{"cannot connect now", "57P03", CodeUnavailable},
		{"too many connections", "53300", CodeUnavailable},
		{"anything else", "23505", CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := wrapError("list", &pq.Error{Code: tc.pqCode})

			var se *StoreError
			assert.ErrorAs(t, err, &se)
			assert.Equal(t, tc.want, se.Code)
			assert.Equal(t, "list", se.Op)
		})
	}
}

func TestWrapErrorTimeoutIsUnavailable(t *testing.T) {
	err := wrapError("list", fmt.Errorf("query: %w", context.DeadlineExceeded))

	var se *StoreError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, CodeUnavailable, se.Code)
}

func TestWrapErrorNilPassesThrough(t *testing.T) {
	assert.NoError(t, wrapError("create", nil))
}

func TestStoreErrorPredicates(t *testing.T) {
	denied := wrapError("remove", &pq.Error{Code: "42501"})
	assert.True(t, IsPermissionDenied(denied))
	assert.False(t, IsPreconditionFailed(denied))

	missing := wrapError("list", &pq.Error{Code: "42P01"})
	assert.True(t, IsPreconditionFailed(missing))
	assert.False(t, IsPermissionDenied(missing))

	assert.False(t, IsPermissionDenied(errors.New("plain")))
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := &pq.Error{Code: "42501"}
	err := wrapError("update", cause)

	var pqErr *pq.Error
	assert.ErrorAs(t, err, &pqErr)
	assert.Equal(t, cause, pqErr)
}
