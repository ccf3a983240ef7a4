package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrNoState is returned by GetLedgerState on a fresh database before the
// first InsertLedgerState.
var ErrNoState = errors.New("no ledger state stored")

func (d *Database) GetLedgerState(ctx context.Context) (*LedgerState, error) {
	query := `
		SELECT epoch, skip_offset_ns, last_sweep
		FROM ledger_state
		WHERE id = 1
	`

	var state LedgerState
	if err := d.db.GetContext(ctx, &state, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("failed to get ledger state: %w", err)
	}

	return &state, nil
}

func (d *Database) InsertLedgerState(ctx context.Context, state LedgerState) error {
	query := `
		INSERT INTO ledger_state (id, epoch, skip_offset_ns, last_sweep)
		VALUES (1, :epoch, :skip_offset_ns, :last_sweep)
	`

	if _, err := d.db.NamedExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("failed to insert ledger state: %w", err)
	}

	return nil
}

func (d *Database) UpdateLedgerState(ctx context.Context, state LedgerState) error {
	query := `
		UPDATE ledger_state
		SET skip_offset_ns = :skip_offset_ns, last_sweep = :last_sweep
		WHERE id = 1
	`

	if _, err := d.db.NamedExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("failed to update ledger state: %w", err)
	}

	return nil
}

// FullState is everything needed to rebuild the in-memory ledger.
type FullState struct {
	State        LedgerState
	Participants []Participant
	Checkins     []Checkin
	Votes        []Vote
}

// LoadFullState reads the whole persisted ledger, fetching the tables
// concurrently. Returns ErrNoState on a fresh database.
func (d *Database) LoadFullState(ctx context.Context) (*FullState, error) {
	state, err := d.GetLedgerState(ctx)
	if err != nil {
		return nil, err
	}

	full := FullState{State: *state}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		full.Participants, err = d.GetParticipants(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		full.Checkins, err = d.GetCheckins(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		full.Votes, err = d.GetVotes(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}

	return &full, nil
}
