package srihtml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNamedRef(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"amp", true},
		{"lt", true},
		{"notin", true},
		{"not", true},
		{"ContourIntegral", true},
		{"hello", false},
		{"notit", false},
		{"a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNamedRef(tt.name))
		})
	}
}

func TestResolveNamedRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"amp", "&amp;"},
		{"notin", "&notin;"},
		{"notit", "&not;it"},
		{"ampx", "&amp;x"},
		{"hello", "&amp;hello&semi;"},
		{"q", "&amp;q&semi;"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveNamedRef(tt.in))
		})
	}
}

func TestResolveNumericRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
		code WarningCode
	}{
		{"65", "&#65;", 0},
		{"x1F600", "&#x1F600;", 0},
		{"X41", "&#X41;", 0},
		{"x0090", "&#x0090;", 0},
		{"xfffff", "&#xfffff;", 0},
		{"x10FFFF", "&#x10FFFF;", 0},
		{"x110000", "&#xFFFD;", WarnCharRefOutOfRange},
		{"99999999999999999999", "&#xFFFD;", WarnCharRefOutOfRange},
		{"xD800", "&#xFFFD;", WarnCharRefSurrogate},
		{"xdfff", "&#xFFFD;", WarnCharRefSurrogate},
		{"0", "&#xFFFD;", WarnCharRefNull},
		{"x00", "&#xFFFD;", WarnCharRefNull},
		{"xzz", "&#xzz;", 0},
		{"x", "&#x;", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := New()
			assert.Equal(t, tt.want, p.resolveNumericRef(tt.in))
			if tt.code == 0 {
				assert.Empty(t, p.Warnings())
			} else {
				assert.Len(t, p.Warnings(), 1)
				assert.Equal(t, tt.code, p.Warnings()[0].Code)
			}
		})
	}
}

func TestHasSurrogate(t *testing.T) {
	assert.False(t, hasSurrogate("plain ascii"))
	assert.False(t, hasSurrogate("smile \U0001F600"))
	assert.False(t, hasSurrogate("\xed\x9f\xbf")) // U+D7FF, just below the range
	assert.True(t, hasSurrogate("\xed\xb2\xa0"))  // U+DCA0
	assert.True(t, hasSurrogate("x\xed\xa0\x80y"))
}
