package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateUsername("writer_01"))
	assert.NoError(t, ValidateUsername("jane.doe"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername(""))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("sup3rsecret"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("allletters"))
	assert.Error(t, ValidatePassword("12345678"))
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"Chars! & Symbols?", "chars-symbols"},
		{"already-a-slug", "already-a-slug"},
		{"???", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
