package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Samsung WindFree 18000 BTU!", "samsung-windfree-18000-btu"},
		{"  Gree -- Pular  ", "gree-pular"},
		{"تكييف سبليت 24000", "24000"},
		{"Already-Slugged", "already-slugged"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "input %q", tc.in)
	}
}

func TestParseIntFallback(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
}

func TestParseFloatFallback(t *testing.T) {
	assert.Equal(t, 2.5, ParseFloat("2.5", 0))
	assert.Equal(t, 9.0, ParseFloat("", 9))
	assert.Equal(t, 9.0, ParseFloat("x", 9))
}
