package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_RuleTable(t *testing.T) {
	g := New()

	tests := []struct {
		name          string
		path          string
		authenticated bool
		allow         bool
		redirect      string
	}{
		{"protected while anonymous", "/documents", false, false, "/login"},
		{"protected subpath while anonymous", "/documents/abc123", false, false, "/login"},
		{"audits while anonymous", "/audits", false, false, "/login"},
		{"profile while anonymous", "/profile", false, false, "/login"},
		{"settings while anonymous", "/settings", false, false, "/login"},
		{"login while authenticated", "/login", true, false, "/documents"},
		{"register while authenticated", "/register", true, false, "/documents"},
		{"login while anonymous", "/login", false, true, ""},
		{"register while anonymous", "/register", false, true, ""},
		{"protected while authenticated", "/documents", true, true, ""},
		{"audit subpath while authenticated", "/audits/a1/versions", true, true, ""},
		{"public root anonymous", "/", false, true, ""},
		{"public root authenticated", "/", true, true, ""},
		{"unknown public path", "/about", false, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := g.Check(tc.path, tc.authenticated)
			assert.Equal(t, tc.allow, d.Allow)
			assert.Equal(t, tc.redirect, d.RedirectTo)
		})
	}
}

func TestCheck_AuthOnlyIsExactMatch(t *testing.T) {
	g := New()

	// only the exact /login and /register paths bounce authenticated users
	d := g.Check("/login/reset", true)
	assert.True(t, d.Allow)
}
