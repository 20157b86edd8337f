package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail("user@example"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("abc"))
	assert.True(t, ValidateUsername("a_perfectly_fine_username"))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername(""))
	assert.False(t, ValidateUsername("this_username_is_way_too_long_to_pass"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Str0ng!pass"))
	assert.False(t, ValidatePassword("Sh0rt!a"), "too short")
	assert.False(t, ValidatePassword("alllowercase1!"), "missing uppercase")
	assert.False(t, ValidatePassword("ALLUPPERCASE1!"), "missing lowercase")
	assert.False(t, ValidatePassword("NoDigitsHere!"), "missing digit")
	assert.False(t, ValidatePassword("NoSpecials123"), "missing special character")
}
