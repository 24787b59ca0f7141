package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is a controllable SessionState for guard tests.
type fakeSession struct {
	token  string
	clears int
}

func (f *fakeSession) Present() bool { return f.token != "" }
func (f *fakeSession) Clear()        { f.token = ""; f.clears++ }

func TestGuardProtectedRouteWithoutToken(t *testing.T) {
	protected := []Route{Dashboard, Bookings, Profile, History, HistoryDetail}
	for _, r := range protected {
		t.Run(r.String(), func(t *testing.T) {
			sess := &fakeSession{}
			g := NewGuard(sess)

			dec := g.Evaluate(r)

			assert.False(t, dec.Allowed)
			assert.Equal(t, Login, dec.Target)
			assert.Equal(t, 1, sess.clears, "a failed check clears any stray token value")
		})
	}
}

func TestGuardEntryFormsWhileAuthenticated(t *testing.T) {
	for _, r := range []Route{Login, Register} {
		t.Run(r.String(), func(t *testing.T) {
			sess := &fakeSession{token: "abc123"}
			g := NewGuard(sess)

			dec := g.Evaluate(r)

			assert.False(t, dec.Allowed)
			assert.Equal(t, Dashboard, dec.Target)
			assert.Equal(t, "abc123", sess.token, "redirect must not touch the token")
		})
	}
}

func TestGuardPublicRoutesAlwaysAllowed(t *testing.T) {
	for _, r := range []Route{Welcome, PasswordReset} {
		for _, token := range []string{"", "abc123"} {
			sess := &fakeSession{token: token}
			g := NewGuard(sess)

			dec := g.Evaluate(r)

			assert.True(t, dec.Allowed, "%s token=%q", r, token)
			assert.Equal(t, r, dec.Target)
			assert.Zero(t, sess.clears)
		}
	}
}

func TestGuardProtectedRouteWithToken(t *testing.T) {
	sess := &fakeSession{token: "abc123"}
	g := NewGuard(sess)

	dec := g.Evaluate(Dashboard)

	assert.True(t, dec.Allowed)
	assert.Equal(t, Dashboard, dec.Target)
}

func TestGuardEntryFormsWithoutToken(t *testing.T) {
	for _, r := range []Route{Login, Register} {
		sess := &fakeSession{}
		g := NewGuard(sess)

		dec := g.Evaluate(r)

		assert.True(t, dec.Allowed, r.String())
		assert.Equal(t, r, dec.Target)
	}
}

func TestGuardIdempotent(t *testing.T) {
	// Same (destination, token-state) pair must yield the same decision
	// twice in a row; rule 1's clear is the only permitted mutation and
	// it does not change an already-empty state.
	cases := []struct {
		name  string
		token string
		dest  Route
	}{
		{"protected without token", "", Profile},
		{"login with token", "abc123", Login},
		{"welcome without token", "", Welcome},
		{"dashboard with token", "abc123", Dashboard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := &fakeSession{token: tc.token}
			g := NewGuard(sess)

			first := g.Evaluate(tc.dest)
			second := g.Evaluate(tc.dest)

			assert.Equal(t, first, second)
		})
	}
}

func TestGuardNeverChainsRedirects(t *testing.T) {
	// Rule 1 sends an unauthenticated user to Login; evaluating the
	// substituted target must then allow it outright.
	sess := &fakeSession{}
	g := NewGuard(sess)

	dec := g.Evaluate(History)
	require.Equal(t, Login, dec.Target)

	dec = g.Evaluate(dec.Target)
	assert.True(t, dec.Allowed)
	assert.Equal(t, Login, dec.Target)
}
