package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestOrigin(t *testing.T) {
	inner := errors.Wrap(stderrors.New("connection refused"), "failed to insert cart row")
	outer := errors.Wrap(inner, "failed to add item")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", stderrors.New("plain"), false},
		{"wrapped", outer, true},
		{"errorf", errors.Errorf("cart %d", 7), true},
		{"joined", errors.Join(&codedError{code: "DUP"}, inner), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := errors.Origin(tt.err)
			if !tt.want {
				assert.Empty(t, origin)

				return
			}
			assert.True(t, strings.HasPrefix(origin, "errors_test.go:"), origin)
		})
	}
}

func TestOrigin_PrefersInnermostStack(t *testing.T) {
	inner := errors.Wrap(stderrors.New("boom"), "inner")
	outer := errors.Wrap(inner, "outer")

	assert.Equal(t, errors.Origin(inner), errors.Origin(outer))
}

func TestAsType(t *testing.T) {
	err := errors.Wrap(errors.Join(stderrors.New("a"), &codedError{code: "CART_UPDATE_FAILED"}), "checkout")

	coded, ok := errors.AsType[*codedError](err)
	require.True(t, ok)
	assert.Equal(t, "CART_UPDATE_FAILED", coded.code)

	_, ok = errors.AsType[*codedError](stderrors.New("other"))
	assert.False(t, ok)
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, errors.Wrap(nil, "ignored"))
	assert.NoError(t, errors.WithStack(nil))
}
