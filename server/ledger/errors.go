package ledger

import "fmt"

// Kind classifies ledger errors into the four caller-facing classes. Every
// error returned by a mutating operation leaves the ledger untouched.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
	KindConflict
	KindBlocked
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindBlocked:
		return "blocked"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Code string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// Is matches two ledger errors by code, so sentinel comparisons with
// errors.Is work across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, msg: fmt.Sprintf(format, args...)}
}

var (
	ErrEmptyNote          = newError(KindValidation, "empty_note", "checkin note must not be empty")
	ErrCheckinNotFound    = newError(KindValidation, "invalid_checkin_id", "no checkin with that id")
	ErrUnknownParticipant = newError(KindValidation, "unknown_participant", "participant never submitted a checkin")
	ErrSweepNotDue        = newError(KindValidation, "sweep_not_due", "compliance sweep is not due yet")

	ErrNotModerator = newError(KindAuthorization, "not_moderator", "operation requires the moderator")
	ErrModeratorMeh = newError(KindAuthorization, "moderator_meh", "the moderator may not vote meh")

	ErrAlreadyCheckedIn = newError(KindConflict, "already_checked_in", "a checkin for this day already exists")
	ErrAlreadyVoted     = newError(KindConflict, "already_voted", "voter already holds this vote")
	ErrConflictingVote  = newError(KindConflict, "conflicting_vote", "voter holds the opposite vote, retract it first")
	ErrNotVoted         = newError(KindConflict, "not_voted", "voter holds no such vote on this checkin")
	ErrNotBlocked       = newError(KindConflict, "not_blocked", "participant is not blocked")

	ErrBlocked = &Error{Kind: KindBlocked, Code: "blocked", msg: "participant is blocked from submitting"}
)
