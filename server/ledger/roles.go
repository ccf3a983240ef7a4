package ledger

// Role is the explicit caller role checked against capability predicates,
// instead of scattering moderator-address comparisons through business paths.
type Role int

const (
	RoleParticipant Role = iota
	RoleModerator
)

// Capability names a privileged thing a caller may do.
type Capability int

const (
	// CapOverrideValidity lets a like force a checkin valid.
	CapOverrideValidity Capability = iota
	// CapManageTime lets the caller apply a time skip.
	CapManageTime
	// CapManageBlocking lets the caller run manual block checks and unblocks.
	CapManageBlocking
)

// Caller identifies who invokes an operation. Authentication happens outside
// the ledger; the ledger only trusts the resolved role.
type Caller struct {
	Address string
	Role    Role
}

// Can reports whether the caller's role grants the capability. Every
// capability is moderator-only today; the predicate keeps that decision in
// one place.
func (c Caller) Can(capability Capability) bool {
	return c.Role == RoleModerator
}

// CallerFor resolves an address against the configured moderator.
func (l *Ledger) CallerFor(address string) Caller {
	role := RoleParticipant
	if address != "" && address == l.cfg.Moderator {
		role = RoleModerator
	}
	return Caller{Address: address, Role: role}
}
