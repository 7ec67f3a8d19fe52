package session

import "fmt"

// Phase tags the session state.
type Phase string

const (
	// PhaseInitializing covers process start until the first restore settles
	PhaseInitializing Phase = "initializing"
	// PhaseSignedOut is the resting state with no current user
	PhaseSignedOut Phase = "signed-out"
	// PhaseSignedIn carries the current user record
	PhaseSignedIn Phase = "signed-in"
)

// State is the session value at a point in time. The user record only exists
// in the signed-in variant, so "authenticated without a user" is not
// representable. The zero value reads as still initializing.
type State struct {
	phase Phase
	user  *User
}

// Initializing is the state before the first restore completes.
func Initializing() State {
	return State{phase: PhaseInitializing}
}

// SignedOut is the state with no current user.
func SignedOut() State {
	return State{phase: PhaseSignedOut}
}

// SignedIn is the state carrying the current user. A nil record collapses to
// SignedOut rather than producing a signed-in state with no identity.
func SignedIn(u *User) State {
	if u == nil {
		return SignedOut()
	}
	return State{phase: PhaseSignedIn, user: u}
}

// Phase returns the tag for this state.
func (s State) Phase() Phase {
	if s.phase == "" {
		return PhaseInitializing
	}
	return s.phase
}

// IsLoading is true only while the initial restore is pending.
func (s State) IsLoading() bool {
	return s.Phase() == PhaseInitializing
}

// IsAuthenticated is true iff a current user is present.
func (s State) IsAuthenticated() bool {
	return s.phase == PhaseSignedIn
}

// CurrentUser returns the signed-in record, or nil.
func (s State) CurrentUser() *User {
	if s.phase != PhaseSignedIn {
		return nil
	}
	return s.user
}

func (s State) String() string {
	if s.phase == PhaseSignedIn {
		return fmt.Sprintf("phase=%s user=%s", s.phase, s.user.Email)
	}
	return fmt.Sprintf("phase=%s", s.Phase())
}
