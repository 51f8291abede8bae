package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"emailAddress" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	Ignored  string `json:"-"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Email: "jane@example.com", Quantity: 1}))

	err := v.Validate(&sample{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, "emailAddress must be a valid email address; quantity must be greater than 0", err.Error())

	err = v.Validate(&sample{Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, "emailAddress is required", err.Error())
}
