package form_test

import (
	"strings"
	"testing"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ada Lovelace", "Ada Lovelace"},
		{"keeps newlines and tabs", "line one\n\tline two\r\n", "line one\n\tline two\r\n"},
		{"strips ANSI escape", "\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"strips NUL and BEL", "a\x00b\x07c", "abc"},
		{"unicode", "Ünïcødé 🚀", "Ünïcødé 🚀"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := form.CleanInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanInput_Rejects(t *testing.T) {
	_, err := form.CleanInput(strings.Repeat("a", form.MaxInputSize+1))
	assert.ErrorIs(t, err, form.ErrInputTooLarge)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = form.CleanInput("bad \xff byte")
	assert.ErrorIs(t, err, form.ErrInvalidUTF8)

	_, err = form.CleanInput(strings.Repeat("a", form.MaxInputSize))
	assert.NoError(t, err)
}
