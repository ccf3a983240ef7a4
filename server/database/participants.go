package database

import (
	"context"
	"fmt"
)

func (d *Database) UpsertParticipants(ctx context.Context, participants []Participant) error {
	if len(participants) == 0 {
		return nil
	}

	query := `
		INSERT INTO participants (address, position, total_checkins, last_evaluated_week, weekly_miss_count, checked_in_today, blocked)
		VALUES (:address, :position, :total_checkins, :last_evaluated_week, :weekly_miss_count, :checked_in_today, :blocked)
		ON CONFLICT (address) DO UPDATE SET
			total_checkins = EXCLUDED.total_checkins,
			last_evaluated_week = EXCLUDED.last_evaluated_week,
			weekly_miss_count = EXCLUDED.weekly_miss_count,
			checked_in_today = EXCLUDED.checked_in_today,
			blocked = EXCLUDED.blocked
	`

	if _, err := d.db.NamedExecContext(ctx, query, participants); err != nil {
		return fmt.Errorf("failed to upsert participants: %w", err)
	}

	return nil
}

func (d *Database) GetParticipants(ctx context.Context) ([]Participant, error) {
	query := `
		SELECT address, position, total_checkins, last_evaluated_week, weekly_miss_count, checked_in_today, blocked
		FROM participants
		ORDER BY position
	`

	var participants []Participant
	if err := d.db.SelectContext(ctx, &participants, query); err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	return participants, nil
}
