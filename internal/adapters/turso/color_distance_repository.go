package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/database"
)

type ColorDistanceRepository struct {
	db *sql.DB
}

func NewColorDistanceRepository(db *sql.DB) *ColorDistanceRepository {
	return &ColorDistanceRepository{db: db}
}

func (r *ColorDistanceRepository) Get(ctx context.Context, hexA, hexB string) (*domain.ColorDistance, error) {
	a, b := domain.CanonicalPair(hexA, hexB)

	d := domain.ColorDistance{HexA: a, HexB: b}
	err := r.db.QueryRowContext(ctx, `
		SELECT distance FROM color_distances WHERE hex_a = ? AND hex_b = ?
	`, a, b).Scan(&d.Distance)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ColorDistanceRepository) SaveIfAbsent(ctx context.Context, pairs []*domain.ColorDistance) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	written := 0
	for _, p := range pairs {
		a, b := domain.CanonicalPair(p.HexA, p.HexB)
		if a == b {
			return 0, fmt.Errorf("distance pair needs two distinct colors, got %s twice", a)
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO color_distances (hex_a, hex_b, distance)
			VALUES (?, ?, ?)
			ON CONFLICT (hex_a, hex_b) DO NOTHING
		`, a, b, p.Distance)
		if err != nil {
			return 0, mapError(err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit distances: %w", err)
	}
	return written, nil
}

func (r *ColorDistanceRepository) ListPartners(ctx context.Context, hex string) ([]string, error) {
	return database.WithRetry(ctx, streamRetries, func() ([]string, error) {
		rows, err := r.db.QueryContext(ctx, `
			SELECT hex_b FROM color_distances WHERE hex_a = ? ORDER BY hex_b
		`, hex)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()

		var partners []string
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				return nil, err
			}
			partners = append(partners, p)
		}
		return partners, rows.Err()
	})
}

func (r *ColorDistanceRepository) ListNear(ctx context.Context, hex string, maxDistance float64) ([]*domain.ColorDistance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hex_a, hex_b, distance
		FROM color_distances
		WHERE (hex_a = ? OR hex_b = ?) AND distance < ?
		ORDER BY distance, CASE WHEN hex_a = ? THEN hex_b ELSE hex_a END
	`, hex, hex, maxDistance, hex)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var near []*domain.ColorDistance
	for rows.Next() {
		var d domain.ColorDistance
		if err := rows.Scan(&d.HexA, &d.HexB, &d.Distance); err != nil {
			return nil, err
		}
		near = append(near, &d)
	}
	return near, rows.Err()
}
