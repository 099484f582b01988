package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"0123456789", true}, // bare 10-digit may start with 0
		{"+919876543210", true},
		{"919876543210", true},
		{"+14155552671", true},
		{" 9876 543 210 ", true},
		{"+91 98765 43210", true},
		{"12345", true},     // short bare digits still match the international branch
		{"987654321", true}, // 9 digits starting 1-9, ditto
		{"", false},
		{"   ", false},
		{"abc", false},
		{"98765abc10", false},
		{"0123456", false},           // bare international numbers cannot start with 0
		{"+0123456789", false},       // nor can "+" ones
		{"+1234567890123456", false}, // 16 digits exceeds E.164
		{"9876-543-210", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsValidPhone(tc.phone), "phone %q", tc.phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizePhone(" +91 98765 43210 "))
	assert.Equal(t, "9876543210", NormalizePhone("9876543210"))
}

func TestConstantTimeEquals(t *testing.T) {
	assert.True(t, ConstantTimeEquals("", ""))
	assert.True(t, ConstantTimeEquals("123456", "123456"))
	assert.False(t, ConstantTimeEquals("123456", "123457"))
	assert.False(t, ConstantTimeEquals("123456", "12345"))
	assert.False(t, ConstantTimeEquals("", "0"))
	assert.False(t, ConstantTimeEquals("abcdef", "abcdeg"))
}
