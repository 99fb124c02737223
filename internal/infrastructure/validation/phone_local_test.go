package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPhoneValidator_ValidUSNumber(t *testing.T) {
	v := NewLocalPhoneValidator("US")

	verdict, err := v.ValidatePhone(context.Background(), "2125550123")

	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.False(t, verdict.Flagged)
	assert.Equal(t, "US", verdict.Country)
}

func TestLocalPhoneValidator_ImpossibleNumber(t *testing.T) {
	v := NewLocalPhoneValidator("US")

	verdict, err := v.ValidatePhone(context.Background(), "0000000000")

	require.NoError(t, err)
	assert.False(t, verdict.Valid)
}

func TestLocalPhoneValidator_Unparseable(t *testing.T) {
	v := NewLocalPhoneValidator("US")

	verdict, err := v.ValidatePhone(context.Background(), "not a phone")

	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "unparseable number", verdict.Detail)
}

func TestLocalPhoneValidator_DefaultsRegion(t *testing.T) {
	v := NewLocalPhoneValidator("")

	verdict, err := v.ValidatePhone(context.Background(), "2125550123")

	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}
