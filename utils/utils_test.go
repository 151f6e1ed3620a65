package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBDPhone(t *testing.T) {
	valid := []string{
		"01712345678",
		"+8801712345678",
		"8801712345678",
		"1712345678",
		"017-1234-5678", // hyphens are stripped before matching
		"01912345678",
	}
	for _, phone := range valid {
		assert.True(t, IsValidBDPhone(phone), phone)
	}

	invalid := []string{
		"",
		"123",
		"01212345678",  // operator digit 2 does not exist
		"0171234567",   // too short
		"017123456789", // too long
		"02712345678",  // landline prefix
		"+15551234567",
		"not a phone",
	}
	for _, phone := range invalid {
		assert.False(t, IsValidBDPhone(phone), phone)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("guest@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@mail.example.org"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("plainaddress"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("spaces in@example.com"))
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(14)
	assert.Len(t, id, 14)
	for _, r := range id {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected rune %q", r)
	}
	assert.NotEqual(t, GenerateID(14), GenerateID(14))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{"beach", "hill"}, SplitTags("beach, hill"))
	assert.Equal(t, []string{"beach"}, SplitTags("beach,,beach, "))
}
