package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/*", "/", true},
		{"/*", "", true},
		{"/*", "/anything/at/all", true},
		{"/ratings", "/ratings", true},
		{"/ratings", "/ratings/", false},
		{"/ratings", "/ratingsExtra", false},
		{"/ratings", "/ratings/1", false},
		{"/appointments/*", "/appointments", true},
		{"/appointments/*", "/appointments/", true},
		{"/appointments/*", "/appointments/123", true},
		{"/appointments/*", "/appointments/123/cancel", true},
		{"/appointments/*", "/appointmentsX", false},
		{"/appointments/*", "/appointmentsX/1", false},
		{"/appointments/*", "/users/appointments/1", false},
		{"/users/*/x", "/users/1/x", false},
		{"ratings", "/ratings", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.path))
		})
	}
}

func TestCompilePattern(t *testing.T) {
	p, ok := compilePattern("/a/b/*")
	assert.True(t, ok)
	assert.True(t, p.prefix)
	assert.Equal(t, []string{"a", "b"}, p.segments)

	_, ok = compilePattern("*.jsp")
	assert.False(t, ok)
}
