package domain

// AccessPolicy decides what unapproved accounts may do.
type AccessPolicy struct {
	ReadOnlyForUnapproved bool
}

// Denial reasons reported by AccessDecision.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonUnapproved      = "unapproved"
)

// AccessDecision is the outcome of checking the current session against a policy.
type AccessDecision struct {
	Allowed  bool
	ReadOnly bool
	Reason   string
}

// CanWrite reports whether the session may mutate community content.
func (d AccessDecision) CanWrite() bool {
	return d.Allowed && !d.ReadOnly
}
