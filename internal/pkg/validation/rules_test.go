package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.io"))

	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@example"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("abcdef12"))
	assert.True(t, IsValidPassword("longer-passw0rd"))

	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("onlyletters"))
	assert.False(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword(""))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Jo"))
	assert.True(t, IsValidName("Ada Lovelace"))

	assert.False(t, IsValidName("J"))
	assert.False(t, IsValidName(""))

	long := make([]byte, NameMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, IsValidName(string(long)))
}
