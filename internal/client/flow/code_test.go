package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeInput_TypeAdvancesAndSignalsLastCell(t *testing.T) {
	var c CodeInput
	for i, ch := range "12345" {
		require.False(t, c.Type(ch))
		require.Equal(t, i+1, c.Focus())
	}
	require.False(t, c.Complete())
	require.True(t, c.Type('6'))
	require.Equal(t, CodeLength-1, c.Focus())

	code, err := c.Code()
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}

func TestCodeInput_IgnoresNonDigits(t *testing.T) {
	var c CodeInput
	assert.False(t, c.Type('a'))
	assert.False(t, c.Type(' '))
	assert.Equal(t, 0, c.Focus())
	assert.Equal(t, "[_] _ _ _ _ _", c.String())
}

func TestCodeInput_Backspace(t *testing.T) {
	var c CodeInput
	c.Type('1')
	c.Type('2')
	assert.Equal(t, "1 2 [_] _ _ _", c.String())

	// empty cell: focus moves back, value kept
	c.Backspace()
	assert.Equal(t, "1 [2] _ _ _ _", c.String())

	// filled cell: cleared, focus stays
	c.Backspace()
	assert.Equal(t, "1 [_] _ _ _ _", c.String())

	c.Backspace()
	c.Backspace()
	c.Backspace()
	assert.Equal(t, "[_] _ _ _ _ _", c.String())
	assert.Equal(t, 0, c.Focus())
}

func TestCodeInput_RetypeLastCell(t *testing.T) {
	var c CodeInput
	full, err := c.Fill("123456")
	require.NoError(t, err)
	require.True(t, full)
	c.Backspace()
	require.False(t, c.Complete())
	require.True(t, c.Type('9'))

	code, err := c.Code()
	require.NoError(t, err)
	assert.Equal(t, "123459", code)
}

func TestCodeInput_Fill(t *testing.T) {
	var c CodeInput
	full, err := c.Fill("12-34-56")
	require.NoError(t, err)
	assert.True(t, full)
	assert.True(t, c.Complete())

	full, err = c.Fill("123")
	require.NoError(t, err)
	assert.False(t, full)
	_, err = c.Code()
	assert.ErrorIs(t, err, ErrIncompleteCode)
}

func TestCodeInput_FillRejectsExtraDigits(t *testing.T) {
	var c CodeInput
	full, err := c.Fill("1234567")
	require.ErrorIs(t, err, ErrCodeTooLong)
	assert.False(t, full)
	assert.Equal(t, "[_] _ _ _ _ _", c.String())
}
