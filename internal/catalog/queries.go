package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const entryColumns = `id, path, digest, size_bytes, compression,
    sequence_count, media_count, cut_count, warning_count, recorded_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry      Entry
		recordedAt string
	)
	if err := row.Scan(
		&entry.ID, &entry.Path, &entry.Digest, &entry.SizeBytes, &entry.Compression,
		&entry.SequenceCount, &entry.MediaCount, &entry.CutCount, &entry.WarningCount, &recordedAt,
	); err != nil {
		return nil, err
	}
	ts, err := time.Parse(timestampLayout, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
	}
	entry.RecordedAt = ts
	return &entry, nil
}

// List returns the most recent scans first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM scans ORDER BY recorded_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list scans: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	return entries, nil
}

// Get fetches a scan header by identifier. It returns nil when no scan matches.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM scans WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scan: %w", err)
	}
	return entry, nil
}

// FindByDigest returns the most recent scan of a file with the given content
// digest, or nil.
func (s *Store) FindByDigest(ctx context.Context, digest string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM scans WHERE digest = ? ORDER BY recorded_at DESC, rowid DESC LIMIT 1`, digest)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by digest: %w", err)
	}
	return entry, nil
}

// Sequences returns the sequence summaries of a scan in document order.
func (s *Store) Sequences(ctx context.Context, id string) ([]Sequence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sequence_id, name, duration_seconds, width, height, cut_count, timeline_items
         FROM scan_sequences WHERE scan_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()

	var out []Sequence
	for rows.Next() {
		var (
			seq                  Sequence
			seqID, width, height int64
		)
		if err := rows.Scan(&seqID, &seq.Name, &seq.DurationSeconds, &width, &height, &seq.Cuts, &seq.TimelineItems); err != nil {
			return nil, fmt.Errorf("list sequences: %w", err)
		}
		seq.SequenceID = uint32(seqID)
		seq.Width, seq.Height = uint32(width), uint32(height)
		out = append(out, seq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	return out, nil
}

// Media returns the media of a scan in registration order.
func (s *Store) Media(ctx context.Context, id string) ([]Medium, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, file_path, frame_rate, duration_seconds, width, height
         FROM scan_media WHERE scan_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var out []Medium
	for rows.Next() {
		var (
			m             Medium
			width, height int64
		)
		if err := rows.Scan(&m.Name, &m.FilePath, &m.FrameRate, &m.DurationSeconds, &width, &height); err != nil {
			return nil, fmt.Errorf("list media: %w", err)
		}
		m.Width, m.Height = uint32(width), uint32(height)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return out, nil
}

// Warnings returns the warning messages of a scan in the order they occurred.
func (s *Store) Warnings(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message FROM scan_warnings WHERE scan_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list warnings: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("list warnings: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warnings: %w", err)
	}
	return out, nil
}

// Delete removes a scan and its rows. It reports whether a scan was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.withWriteLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			res, err := s.db.ExecContext(ctx, `DELETE FROM scans WHERE id = ?`, id)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			removed = n > 0
			return nil
		})
	})
	if err != nil {
		return false, fmt.Errorf("delete scan: %w", err)
	}
	return removed, nil
}
