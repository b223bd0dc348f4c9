package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const buildColumns = `id, seq, fingerprint, source, target, toolchain, panic_strategy, capabilities, extensions,
	destination, artifact, size, sha256, status, error, created_at`

// ListOptions filters ListBuilds.
type ListOptions struct {
	// Limit caps the number of rows; zero or negative means no limit.
	Limit int

	// Fingerprint restricts rows to one descriptor identity when set.
	Fingerprint string
}

// ListBuilds returns builds newest first: ORDER BY seq DESC, id COLLATE BINARY.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListBuilds(ctx context.Context, opts ListOptions) ([]BuildRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Fingerprint != "" {
		where = append(where, "fingerprint = ?")
		args = append(args, opts.Fingerprint)
	}

	query := "SELECT " + buildColumns + " FROM builds"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC, id COLLATE BINARY ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	records := []BuildRecord{}
	for rows.Next() {
		rec, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return records, nil
}

// GetBuild retrieves a single build by ID.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) GetBuild(ctx context.Context, id string) (BuildRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+buildColumns+" FROM builds WHERE id = ?", id)
	rec, err := scanBuild(row)
	if err != nil {
		return BuildRecord{}, fmt.Errorf("get build %s: %w", id, err)
	}
	return rec, nil
}

// LatestBuild returns the most recent successful build with the given
// fingerprint. Returns an error wrapping sql.ErrNoRows if there is none.
func (s *Store) LatestBuild(ctx context.Context, fingerprint string) (BuildRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+buildColumns+` FROM builds
		WHERE fingerprint = ? AND status = ?
		ORDER BY seq DESC LIMIT 1`, fingerprint, string(StatusOK))
	rec, err := scanBuild(row)
	if err != nil {
		return BuildRecord{}, fmt.Errorf("latest build: %w", err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (BuildRecord, error) {
	var (
		rec       BuildRecord
		caps      string
		exts      string
		status    string
		createdAt string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Seq,
		&rec.Fingerprint,
		&rec.Source,
		&rec.Target,
		&rec.Toolchain,
		&rec.PanicStrategy,
		&caps,
		&exts,
		&rec.Destination,
		&rec.Artifact,
		&rec.Size,
		&rec.SHA256,
		&status,
		&rec.Error,
		&createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return BuildRecord{}, err
		}
		return BuildRecord{}, fmt.Errorf("scan build: %w", err)
	}

	var err error
	if rec.Capabilities, err = unmarshalList(caps); err != nil {
		return BuildRecord{}, err
	}
	if rec.Extensions, err = unmarshalList(exts); err != nil {
		return BuildRecord{}, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return BuildRecord{}, err
	}
	rec.Status = Status(status)
	return rec, nil
}
