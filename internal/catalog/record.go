package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timestampLayout has a fixed width so stored values sort chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record stores scan and returns its new identifier. The whole scan is written
// in one transaction while holding the catalog write lock.
func (s *Store) Record(ctx context.Context, scan Scan) (string, error) {
	if strings.TrimSpace(scan.Path) == "" {
		return "", errors.New("record scan: empty path")
	}
	if strings.TrimSpace(scan.Digest) == "" {
		return "", errors.New("record scan: empty digest")
	}

	id := uuid.NewString()
	recordedAt := time.Now().UTC().Format(timestampLayout)
	err := s.withWriteLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			return s.insertScan(ctx, id, recordedAt, scan)
		})
	})
	if err != nil {
		return "", fmt.Errorf("record scan: %w", err)
	}
	return id, nil
}

func (s *Store) insertScan(ctx context.Context, id, recordedAt string, scan Scan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scans (
            id, path, digest, size_bytes, compression,
            sequence_count, media_count, cut_count, warning_count, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, scan.Path, scan.Digest, scan.SizeBytes, scan.Compression,
		len(scan.Sequences), len(scan.Media), scan.cutCount(), len(scan.Warnings), recordedAt,
	); err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	if err := insertRows(ctx, tx,
		`INSERT INTO scan_sequences (
            scan_id, position, sequence_id, name, duration_seconds, width, height, cut_count, timeline_items
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(scan.Sequences), func(i int) []any {
			seq := scan.Sequences[i]
			return []any{id, i, int64(seq.SequenceID), seq.Name, seq.DurationSeconds, int64(seq.Width), int64(seq.Height), seq.Cuts, seq.TimelineItems}
		}); err != nil {
		return fmt.Errorf("insert sequences: %w", err)
	}

	if err := insertRows(ctx, tx,
		`INSERT INTO scan_media (
            scan_id, position, name, file_path, frame_rate, duration_seconds, width, height
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(scan.Media), func(i int) []any {
			m := scan.Media[i]
			return []any{id, i, m.Name, m.FilePath, m.FrameRate, m.DurationSeconds, int64(m.Width), int64(m.Height)}
		}); err != nil {
		return fmt.Errorf("insert media: %w", err)
	}

	if err := insertRows(ctx, tx,
		`INSERT INTO scan_warnings (scan_id, position, message) VALUES (?, ?, ?)`,
		len(scan.Warnings), func(i int) []any {
			return []any{id, i, scan.Warnings[i]}
		}); err != nil {
		return fmt.Errorf("insert warnings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, row func(int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return err
		}
	}
	return nil
}
