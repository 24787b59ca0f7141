package routes

// SessionState is the slice of the session store the guard consults:
// a boolean presence check plus the ability to drop a stray value.
// Validity is the server's business, not the guard's.
type SessionState interface {
	Present() bool
	Clear()
}

// Decision is the outcome of one guard evaluation. Target is the route
// that should actually mount; it equals the requested destination when
// Allowed is true.
type Decision struct {
	Allowed bool
	Target  Route
}

// Guard gates every route transition. It is stateless between
// evaluations: each decision is recomputed from the destination's
// metadata and the current token presence, and at most one redirect is
// ever substituted.
type Guard struct {
	session SessionState
}

// NewGuard creates a guard over the given session state.
func NewGuard(s SessionState) *Guard {
	return &Guard{session: s}
}

// Evaluate decides whether dest may mount, in precedence order:
//
//  1. Protected route without a token: clear any stray token value and
//     redirect to login. The requested destination is discarded.
//  2. Login/register while authenticated: redirect to the dashboard.
//  3. Otherwise allow unmodified.
func (g *Guard) Evaluate(dest Route) Decision {
	present := g.session.Present()
	switch {
	case Describe(dest).RequiresAuth && !present:
		g.session.Clear()
		return Decision{Target: Login}
	case (dest == Login || dest == Register) && present:
		return Decision{Target: Dashboard}
	default:
		return Decision{Allowed: true, Target: dest}
	}
}
