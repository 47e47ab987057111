package auth

// State is the position of the login state machine
type State int

const (
	StateAwaitingEmail    State = iota // Waiting for a well-formed email
	StateAwaitingPassword              // Waiting for a well-formed password
	StateAuthenticated                 // Credentials matched
	StateRejected                      // Last attempt did not match
	StateLockedOut                     // Too many failures, login disabled
)

// String returns a human-readable representation of the State
func (s State) String() string {
	switch s {
	case StateAwaitingEmail:
		return "awaiting_email"
	case StateAwaitingPassword:
		return "awaiting_password"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	case StateLockedOut:
		return "locked_out"
	default:
		return "unknown"
	}
}
