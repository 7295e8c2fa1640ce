// File: internal/routeguard/guard.go
package routeguard

import (
	"bluestock_client/internal/session"
)

// Class buckets a destination for the gating rule table.
type Class int

const (
	// ClassPublic destinations are reachable regardless of auth state.
	ClassPublic Class = iota
	// ClassPublicEntry destinations (login, register) are for anonymous
	// users; authenticated users are bounced to the landing page.
	ClassPublicEntry
	// ClassAuthenticated destinations require a session.
	ClassAuthenticated
)

// Well-known destinations.
const (
	PathLanding   = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathCompanies = "/companies"
	PathCompany   = "/company"
	PathAnalytics = "/analytics"
)

// Decision is the guard's verdict for one navigation event.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow is the verdict that lets the navigation proceed.
var Allow = Decision{Allowed: true}

// Redirect builds a verdict that bounces the navigation to another path.
func Redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Classify maps a requested path onto its destination class. Unknown paths
// are treated as authenticated-only, the conservative default for an app
// whose surface is mostly behind login.
func Classify(path string) Class {
	switch path {
	case PathLanding:
		return ClassPublic
	case PathLogin, PathRegister:
		return ClassPublicEntry
	}
	return ClassAuthenticated
}

// Decide evaluates the rule table for one navigation event. It is a pure
// function of the session snapshot and the requested path; no I/O beyond
// the redirect signal in the returned decision.
//
//	destination        unauthenticated     authenticated
//	public entry       allow               redirect -> dashboard
//	authenticated-only redirect -> login   allow
//	fully public       allow               allow
func Decide(snap session.Snapshot, path string) Decision {
	switch Classify(path) {
	case ClassPublic:
		return Allow
	case ClassPublicEntry:
		if snap.IsAuthenticated() {
			return Redirect(PathDashboard)
		}
		return Allow
	default:
		if !snap.IsAuthenticated() {
			return Redirect(PathLogin)
		}
		return Allow
	}
}
