package database

import (
	"context"
	"fmt"
)

func (d *Database) UpsertCheckin(ctx context.Context, checkin Checkin) error {
	query := `
		INSERT INTO checkins (id, author, note, created_at, like_count, meh_count, organizer_liked, valid)
		VALUES (:id, :author, :note, :created_at, :like_count, :meh_count, :organizer_liked, :valid)
		ON CONFLICT (id) DO UPDATE SET
			like_count = EXCLUDED.like_count,
			meh_count = EXCLUDED.meh_count,
			organizer_liked = EXCLUDED.organizer_liked,
			valid = EXCLUDED.valid
	`

	if _, err := d.db.NamedExecContext(ctx, query, checkin); err != nil {
		return fmt.Errorf("failed to upsert checkin: %w", err)
	}

	return nil
}

func (d *Database) GetCheckins(ctx context.Context) ([]Checkin, error) {
	query := `
		SELECT id, author, note, created_at, like_count, meh_count, organizer_liked, valid
		FROM checkins
		ORDER BY id
	`

	var checkins []Checkin
	if err := d.db.SelectContext(ctx, &checkins, query); err != nil {
		return nil, fmt.Errorf("failed to get checkins: %w", err)
	}

	return checkins, nil
}
