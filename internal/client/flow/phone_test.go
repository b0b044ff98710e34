package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		prefix, number, want string
	}{
		{"+57", "300 123 4567", "+573001234567"},
		{"57", "(300) 123-4567", "+573001234567"},
		{"+1", "555.0100", "+15550100"},
	}
	for _, tt := range tests {
		got, err := FormatPhoneNumber(tt.prefix, tt.number)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range [][2]string{{"", "300"}, {"+57", ""}, {"+", "abc"}} {
		_, err := FormatPhoneNumber(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidPhone)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+573001234567", NormalizePhone("573001234567"))
	assert.Equal(t, "+573001234567", NormalizePhone("+57 300 123 4567"))
	assert.Equal(t, "", NormalizePhone("--"))
}
