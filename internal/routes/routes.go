// Package routes holds the static route table of the patient portal and
// the navigation guard that gates every route transition.
package routes

import "fmt"

// Route identifies a navigable view of the portal.
type Route int

const (
	Welcome Route = iota
	Login
	Register
	PasswordReset
	Dashboard
	Bookings
	Profile
	History
	HistoryDetail

	routeCount // sentinel, keep last
)

// Descriptor is the immutable metadata record of one route. Chrome flags
// drive the nav bar and profile badge; RequiresAuth drives the guard.
type Descriptor struct {
	Path         string
	RequiresAuth bool
	ShowNav      bool
	ShowProfile  bool
}

// table enumerates every route exhaustively. ValidateTable enforces
// completeness at startup, so missing entries fail fast instead of
// silently defaulting.
var table = map[Route]Descriptor{
	Welcome:       {Path: "/"},
	Login:         {Path: "/login"},
	Register:      {Path: "/register"},
	PasswordReset: {Path: "/password-reset/:token"},
	Dashboard:     {Path: "/dashboard", RequiresAuth: true, ShowNav: true, ShowProfile: true},
	Bookings:      {Path: "/bookings", RequiresAuth: true, ShowNav: true, ShowProfile: true},
	Profile:       {Path: "/profile", RequiresAuth: true, ShowNav: true, ShowProfile: true},
	History:       {Path: "/history", RequiresAuth: true, ShowNav: true, ShowProfile: true},
	HistoryDetail: {Path: "/history/:id", RequiresAuth: true, ShowNav: true, ShowProfile: true},
}

// Describe returns the descriptor of r.
func Describe(r Route) Descriptor {
	return table[r]
}

// String returns the route's path pattern.
func (r Route) String() string {
	if d, ok := table[r]; ok {
		return d.Path
	}
	return fmt.Sprintf("route(%d)", int(r))
}

// ValidateTable checks that every route has exactly one descriptor with a
// unique, non-empty path. Run once at startup.
func ValidateTable() error {
	seen := make(map[string]Route, routeCount)
	for r := Welcome; r < routeCount; r++ {
		d, ok := table[r]
		if !ok {
			return fmt.Errorf("routes: route %d has no descriptor", int(r))
		}
		if d.Path == "" {
			return fmt.Errorf("routes: route %d has an empty path", int(r))
		}
		if prev, dup := seen[d.Path]; dup {
			return fmt.Errorf("routes: path %q declared for both %s and %s", d.Path, prev, r)
		}
		seen[d.Path] = r
	}
	if len(table) != int(routeCount) {
		return fmt.Errorf("routes: table has %d entries, want %d", len(table), int(routeCount))
	}
	return nil
}
