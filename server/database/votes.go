package database

import (
	"context"
	"fmt"
)

func (d *Database) InsertVote(ctx context.Context, vote Vote) error {
	query := `
		INSERT INTO votes (voter, checkin_id, kind)
		VALUES (:voter, :checkin_id, :kind)
		ON CONFLICT (voter, checkin_id) DO UPDATE SET
			kind = EXCLUDED.kind
	`

	if _, err := d.db.NamedExecContext(ctx, query, vote); err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

func (d *Database) DeleteVote(ctx context.Context, voter string, checkinID int64) error {
	query := `
		DELETE FROM votes
		WHERE voter = $1 AND checkin_id = $2
	`

	if _, err := d.db.ExecContext(ctx, query, voter, checkinID); err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	return nil
}

func (d *Database) GetVotes(ctx context.Context) ([]Vote, error) {
	query := `
		SELECT voter, checkin_id, kind
		FROM votes
	`

	var votes []Vote
	if err := d.db.SelectContext(ctx, &votes, query); err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	return votes, nil
}
