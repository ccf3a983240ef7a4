package database

import "time"

type LedgerState struct {
	Epoch        time.Time `db:"epoch"`
	SkipOffsetNS int64     `db:"skip_offset_ns"`
	LastSweep    time.Time `db:"last_sweep"`
}

type Participant struct {
	Address           string `db:"address"`
	Position          int    `db:"position"`
	TotalCheckins     int    `db:"total_checkins"`
	LastEvaluatedWeek int    `db:"last_evaluated_week"`
	WeeklyMissCount   int    `db:"weekly_miss_count"`
	CheckedInToday    bool   `db:"checked_in_today"`
	Blocked           bool   `db:"blocked"`
}

type Checkin struct {
	ID             int64     `db:"id"`
	Author         string    `db:"author"`
	Note           string    `db:"note"`
	CreatedAt      time.Time `db:"created_at"`
	LikeCount      int       `db:"like_count"`
	MehCount       int       `db:"meh_count"`
	OrganizerLiked bool      `db:"organizer_liked"`
	Valid          bool      `db:"valid"`
}

type Vote struct {
	Voter     string `db:"voter"`
	CheckinID int64  `db:"checkin_id"`
	Kind      string `db:"kind"`
}
