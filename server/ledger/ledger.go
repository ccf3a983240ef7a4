// Package ledger implements the shared accountability ledger: daily checkins,
// peer validity voting with a moderator override, and the rolling-week
// compliance sweep that blocks participants with too many missed or
// invalidated days.
//
// All state lives in memory behind a single RWMutex; every mutating operation
// is all-or-nothing and every read observes a consistent snapshot.
package ledger

import (
	"sync"
	"time"
)

const (
	defaultDayLength     = 24 * time.Hour
	defaultDaysPerWeek   = 7
	defaultMissAllowance = 2
	defaultMehQuorumPct  = 67
)

// Config carries the tunables of the cohort. Zero values fall back to the
// defaults above.
type Config struct {
	// Moderator is the address of the single privileged identity.
	Moderator string
	// DayLength is the unit the clock is partitioned into.
	DayLength time.Duration
	// DaysPerWeek groups day indices into week indices.
	DaysPerWeek int
	// MissAllowance is the number of missed-or-invalid days a week may
	// contain before the sweep blocks the participant.
	MissAllowance int
	// MehQuorumPct is the percentage of the registered cohort whose meh
	// votes invalidate a checkin.
	MehQuorumPct int
}

func (c Config) withDefaults() Config {
	if c.DayLength <= 0 {
		c.DayLength = defaultDayLength
	}
	if c.DaysPerWeek <= 0 {
		c.DaysPerWeek = defaultDaysPerWeek
	}
	if c.MissAllowance <= 0 {
		c.MissAllowance = defaultMissAllowance
	}
	if c.MehQuorumPct <= 0 {
		c.MehQuorumPct = defaultMehQuorumPct
	}
	return c
}

// Checkin is one participant's daily activity record. The note is immutable
// after submission; the counts and the verdict mutate under voting.
type Checkin struct {
	ID             int64
	Author         string
	Note           string
	CreatedAt      time.Time
	LikeCount      int
	MehCount       int
	OrganizerLiked bool
	Valid          bool
}

// ParticipantStatus is the registry's view of one participant.
type ParticipantStatus struct {
	Address           string
	TotalCheckins     int
	LastEvaluatedWeek int
	WeeklyMissCount   int
	CheckedInToday    bool
	Blocked           bool
}

// VoteKind is the mutually exclusive up/down verdict a voter holds on a
// checkin.
type VoteKind string

const (
	VoteLike VoteKind = "like"
	VoteMeh  VoteKind = "meh"
)

// Vote is one voter's standing vote on one checkin.
type Vote struct {
	Voter     string
	CheckinID int64
	Kind      VoteKind
}

type voteKey struct {
	voter string
	id    int64
}

type authorDay struct {
	author string
	day    int
}

// Ledger owns all cohort state. One instance per cohort.
type Ledger struct {
	cfg   Config
	clock Clock

	mu sync.RWMutex

	epoch     time.Time
	skip      time.Duration
	lastSweep time.Time

	checkins     []*Checkin                    // dense, checkins[i].ID == i+1
	byAuthorDay  map[authorDay]int64           // one-per-day enforcement
	byAuthor     map[string][]int64            // owned ids in submission order
	participants map[string]*ParticipantStatus // lazily created
	order        []string                      // first-submission order
	positions    map[string]int                // address -> index in order
	votes        map[voteKey]VoteKind
}

// New creates an empty ledger whose enrollment epoch is the clock's current
// moment.
func New(cfg Config, clock Clock) *Ledger {
	if clock == nil {
		clock = SystemClock()
	}
	l := &Ledger{
		cfg:          cfg.withDefaults(),
		clock:        clock,
		byAuthorDay:  make(map[authorDay]int64),
		byAuthor:     make(map[string][]int64),
		participants: make(map[string]*ParticipantStatus),
		positions:    make(map[string]int),
		votes:        make(map[voteKey]VoteKind),
	}
	l.epoch = clock.Now()
	l.lastSweep = l.epoch
	return l
}

// State is a full copy of the ledger's persisted state, used to restore an
// instance at startup and to snapshot it for write-through persistence.
type State struct {
	Epoch     time.Time
	Skip      time.Duration
	LastSweep time.Time

	// Participants in first-submission order.
	Participants []ParticipantStatus
	// Checkins ordered by id, dense from 1.
	Checkins []Checkin
	Votes    []Vote
}

// FromState rebuilds a ledger from persisted state. The secondary indexes
// are derived, not restored.
func FromState(cfg Config, clock Clock, st State) *Ledger {
	if clock == nil {
		clock = SystemClock()
	}
	l := &Ledger{
		cfg:          cfg.withDefaults(),
		clock:        clock,
		epoch:        st.Epoch,
		skip:         st.Skip,
		lastSweep:    st.LastSweep,
		byAuthorDay:  make(map[authorDay]int64),
		byAuthor:     make(map[string][]int64),
		participants: make(map[string]*ParticipantStatus, len(st.Participants)),
		positions:    make(map[string]int, len(st.Participants)),
		votes:        make(map[voteKey]VoteKind, len(st.Votes)),
	}
	for i, p := range st.Participants {
		status := p
		l.participants[p.Address] = &status
		l.order = append(l.order, p.Address)
		l.positions[p.Address] = i
	}
	for _, c := range st.Checkins {
		checkin := c
		l.checkins = append(l.checkins, &checkin)
		day := l.dayIndex(c.CreatedAt)
		l.byAuthorDay[authorDay{author: c.Author, day: day}] = c.ID
		l.byAuthor[c.Author] = append(l.byAuthor[c.Author], c.ID)
	}
	for _, v := range st.Votes {
		l.votes[voteKey{voter: v.Voter, id: v.CheckinID}] = v.Kind
	}
	return l
}

// Snapshot copies the full persisted state under the read lock.
func (l *Ledger) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := State{
		Epoch:     l.epoch,
		Skip:      l.skip,
		LastSweep: l.lastSweep,
	}
	for _, addr := range l.order {
		st.Participants = append(st.Participants, *l.participants[addr])
	}
	for _, c := range l.checkins {
		st.Checkins = append(st.Checkins, *c)
	}
	for key, kind := range l.votes {
		st.Votes = append(st.Votes, Vote{Voter: key.voter, CheckinID: key.id, Kind: kind})
	}
	return st
}

// Epoch returns the cohort's enrollment epoch.
func (l *Ledger) Epoch() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.epoch
}

// Now reports the ledger's current moment, skip offset included.
func (l *Ledger) Now() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.now()
}

// CurrentDay reports the day index of the current moment.
func (l *Ledger) CurrentDay() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dayIndex(l.now())
}

// RegisteredCount reports how many participants ever submitted.
func (l *Ledger) RegisteredCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}
