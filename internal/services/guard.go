package services

import "github.com/apetrenko/jobport/internal/models"

// Decision is the route guard's verdict for a guarded subtree.
type Decision int

const (
	// DecisionPending: authentication is still being checked; render a
	// neutral pending state, no navigation yet.
	DecisionPending Decision = iota
	// DecisionLogin: not authenticated; send the caller to the login
	// entry point.
	DecisionLogin
	// DecisionUnauthorized: authenticated but the role is not allowed
	// here; send the caller to the unauthorized entry point.
	DecisionUnauthorized
	// DecisionAllow: access granted.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionLogin:
		return "login"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Guard derives the access decision for a subtree from the auth state and
// the set of allowed roles. An empty role set admits any authenticated
// user. Pure function: no I/O, no side effects.
func Guard(st AuthState, allowed ...models.Role) Decision {
	if st.Loading {
		return DecisionPending
	}
	if !st.IsAuthenticated || st.User == nil {
		return DecisionLogin
	}
	if len(allowed) == 0 {
		return DecisionAllow
	}
	for _, role := range allowed {
		if st.User.Role == role {
			return DecisionAllow
		}
	}
	return DecisionUnauthorized
}
