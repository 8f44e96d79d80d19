package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already thirteen digits", "4006381333931", "4006381333931"},
		{"short code left padded", "81234", "0000000081234"},
		{"long code keeps rightmost digits", "ABC99988877660011", "9988877660011"},
		{"letters stripped", "S-81234", "0000000081234"},
		{"whitespace stripped", " 812 34 ", "0000000081234"},
		{"empty input", "", ""},
		{"no digits at all", "no-code-here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"4006381333931", "81234", "ABC99988877660011", "S-000123"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalizing twice must not change %q", in)
	}
}

func TestNormalizeLength(t *testing.T) {
	inputs := []string{"1", "999999999999999999", "x9x8x7", "0"}
	for _, in := range inputs {
		got := Normalize(in)
		if got == "" {
			continue
		}
		assert.Len(t, got, CodeLength)
		for _, r := range got {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
