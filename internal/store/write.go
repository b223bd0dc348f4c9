package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WriteBuild appends a build record and sets rec.Seq to its position in the
// ledger. Writing an ID that already exists is a no-op that reports the
// stored seq.
func (s *Store) WriteBuild(ctx context.Context, rec *BuildRecord) error {
	if rec.ID == "" {
		return errors.New("write build: empty id")
	}
	if rec.Status != StatusOK && rec.Status != StatusFailed {
		return fmt.Errorf("write build: invalid status %q", rec.Status)
	}

	caps, err := marshalList(rec.Capabilities)
	if err != nil {
		return fmt.Errorf("write build: %w", err)
	}
	exts, err := marshalList(rec.Extensions)
	if err != nil {
		return fmt.Errorf("write build: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write build: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM builds WHERE id = ?`, rec.ID).Scan(&existing)
	switch {
	case err == nil:
		rec.Seq = existing
		return tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("write build: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM builds`).Scan(&seq); err != nil {
		return fmt.Errorf("write build: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds
		(id, seq, fingerprint, source, target, toolchain, panic_strategy, capabilities, extensions,
		 destination, artifact, size, sha256, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		seq,
		rec.Fingerprint,
		rec.Source,
		rec.Target,
		rec.Toolchain,
		rec.PanicStrategy,
		caps,
		exts,
		rec.Destination,
		rec.Artifact,
		rec.Size,
		rec.SHA256,
		string(rec.Status),
		rec.Error,
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("write build: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write build: %w", err)
	}

	rec.Seq = seq
	return nil
}
