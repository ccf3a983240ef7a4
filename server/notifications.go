package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// notify posts a message to the configured Discord webhook. Notifications
// are best-effort observer traffic and never affect the ledger outcome.
func (s *Server) notify(ctx context.Context, content string) {
	if s.webhook == nil {
		return
	}

	if _, err := s.webhook.CreateContent(content); err != nil {
		slog.ErrorContext(ctx, "Failed to send notification", slog.Any("err", err))
	}
}

func (s *Server) notifyCheckinCreated(ctx context.Context, c ledger.Checkin) {
	s.notify(ctx, fmt.Sprintf("Checkin `#%d` submitted by `%s` at %s:\n> %s",
		c.ID, c.Author, c.CreatedAt.Format(timeLayout), c.Note))
}

func (s *Server) notifyVote(ctx context.Context, voter string, c ledger.Checkin, kind ledger.VoteKind, retracted, validChanged bool) {
	var action string
	switch {
	case retracted && kind == ledger.VoteLike:
		action = "retracted their like on"
	case retracted:
		action = "retracted their meh on"
	case kind == ledger.VoteLike:
		action = "liked"
	default:
		action = "mehed"
	}

	msg := fmt.Sprintf("`%s` %s checkin `#%d` (likes: %d, mehs: %d)", voter, action, c.ID, c.LikeCount, c.MehCount)
	if validChanged {
		verdict := "invalid"
		if c.Valid {
			verdict = "valid"
		}
		msg += fmt.Sprintf("\nCheckin `#%d` by `%s` is now **%s**", c.ID, c.Author, verdict)
	}
	s.notify(ctx, msg)
}

func (s *Server) notifySweep(ctx context.Context, res ledger.SweepResult) {
	msg := fmt.Sprintf("Compliance sweep evaluated `%d` participants, newly blocked `%d`", res.Evaluated, res.NewlyBlocked)
	for _, addr := range res.Blocked {
		msg += fmt.Sprintf("\nBlocked: `%s`", addr)
	}
	for _, addr := range res.Unblocked {
		msg += fmt.Sprintf("\nUnblocked: `%s`", addr)
	}
	s.notify(ctx, msg)
}
