package acctcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.0100", "1.01"},
		{"2.000", "2"},
		{"", ""},
		{"3.01", "3.01"},
		{"3.10", "3.1"},
		{"1.01.01.001", "1.01.01.001"},
		{"1..02", "1.02"},
		{" 2.01.000 ", "2.01"},
		{"11010000", "1101"},
		{"000", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "Normalize(%q)", tt.raw)
	}
}

func TestNormalize_NoTrailingZeroOrEmptySegments(t *testing.T) {
	inputs := []string{"1.0100.200", "0.0.0", "9.90.900.9000", "1.", ".1", "10.20.30"}
	for _, in := range inputs {
		out := Normalize(in)
		if out == "" {
			continue
		}
		for _, seg := range strings.Split(out, ".") {
			assert.NotEmpty(t, seg, "Normalize(%q) = %q", in, out)
			assert.False(t, strings.HasSuffix(seg, "0"), "Normalize(%q) = %q", in, out)
		}
	}
}

func TestLeading(t *testing.T) {
	assert.Equal(t, "1", Leading("1.01"))
	assert.Equal(t, "3", Leading("3"))
	assert.Equal(t, "", Leading(""))
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		code, prefix string
		want         bool
	}{
		{"3.1", "3.1", true},
		{"3.1.05", "3.1", true},
		{"3.15", "3.1", false},
		{"3.01.02", "3.01", true},
		{"3.01", "3.1", false},
		{"3", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPrefix(tt.code, tt.prefix), "HasPrefix(%q, %q)", tt.code, tt.prefix)
	}
}

func TestHasAnyPrefix(t *testing.T) {
	assert.True(t, HasAnyPrefix("3.1.2", []string{"3.01", "3.1"}))
	assert.True(t, HasAnyPrefix("3.01.2", []string{"3.01", "3.1"}))
	assert.False(t, HasAnyPrefix("3.2", []string{"3.01", "3.1"}))
	assert.False(t, HasAnyPrefix("3.2", nil))
}

