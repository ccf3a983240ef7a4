package server

import (
	"time"

	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

type SubmitRequest struct {
	Note string `json:"note"`
}

type CheckinResponse struct {
	ID             int64     `json:"id"`
	Author         string    `json:"author"`
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"created_at"`
	LikeCount      int       `json:"like_count"`
	MehCount       int       `json:"meh_count"`
	OrganizerLiked bool      `json:"organizer_liked"`
	Valid          bool      `json:"valid"`
}

func newCheckinResponse(c ledger.Checkin) CheckinResponse {
	return CheckinResponse{
		ID:             c.ID,
		Author:         c.Author,
		Note:           c.Note,
		CreatedAt:      c.CreatedAt,
		LikeCount:      c.LikeCount,
		MehCount:       c.MehCount,
		OrganizerLiked: c.OrganizerLiked,
		Valid:          c.Valid,
	}
}

type ParticipantResponse struct {
	Address           string `json:"address"`
	TotalCheckins     int    `json:"total_checkins"`
	LastEvaluatedWeek int    `json:"last_evaluated_week"`
	WeeklyMissCount   int    `json:"weekly_miss_count"`
	CheckedInToday    bool   `json:"checked_in_today"`
	Blocked           bool   `json:"blocked"`
}

func newParticipantResponse(p ledger.ParticipantStatus) ParticipantResponse {
	return ParticipantResponse{
		Address:           p.Address,
		TotalCheckins:     p.TotalCheckins,
		LastEvaluatedWeek: p.LastEvaluatedWeek,
		WeeklyMissCount:   p.WeeklyMissCount,
		CheckedInToday:    p.CheckedInToday,
		Blocked:           p.Blocked,
	}
}

type CheckinListResponse struct {
	IDs []int64 `json:"ids"`
}

type CheckinCountResponse struct {
	Total int `json:"total"`
}

type TimeSkipResponse struct {
	Amount    string    `json:"amount"`
	NewMoment time.Time `json:"new_moment"`
}

type SweepResponse struct {
	Moment       time.Time `json:"moment"`
	Evaluated    int       `json:"evaluated"`
	NewlyBlocked int       `json:"newly_blocked"`
	Blocked      []string  `json:"blocked,omitempty"`
	Unblocked    []string  `json:"unblocked,omitempty"`
}

type BlockCheckResponse struct {
	Address string `json:"address"`
	Blocked bool   `json:"blocked"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
