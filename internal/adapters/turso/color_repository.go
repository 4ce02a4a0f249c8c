package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/database"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

const colorColumns = `hex, label, r, g, b, h, s, v, rounded_hex, is_round, in_themes`

type ColorRepository struct {
	db *sql.DB
}

func NewColorRepository(db *sql.DB) *ColorRepository {
	return &ColorRepository{db: db}
}

func (r *ColorRepository) GetByHex(ctx context.Context, hex string) (*domain.Color, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+colorColumns+` FROM colors WHERE hex = ?`, hex)
	c, err := scanColor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ColorRepository) Create(ctx context.Context, c *domain.Color) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO colors (`+colorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.Hex, c.Label,
		c.RGB.R, c.RGB.G, c.RGB.B,
		c.HSV.H, c.HSV.S, c.HSV.V,
		c.RoundedHex, util.BoolToInt64(c.IsRound), util.BoolToInt64(c.InThemes),
	)
	return mapError(err)
}

func (r *ColorRepository) Update(ctx context.Context, c *domain.Color) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE colors
		SET label = ?, r = ?, g = ?, b = ?, h = ?, s = ?, v = ?,
		    rounded_hex = ?, is_round = ?, in_themes = ?
		WHERE hex = ?
	`,
		c.Label,
		c.RGB.R, c.RGB.G, c.RGB.B,
		c.HSV.H, c.HSV.S, c.HSV.V,
		c.RoundedHex, util.BoolToInt64(c.IsRound), util.BoolToInt64(c.InThemes),
		c.Hex,
	)
	if err != nil {
		return mapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("color %s not found", c.Hex)
	}
	return nil
}

func (r *ColorRepository) ListInThemes(ctx context.Context) ([]*domain.Color, error) {
	return r.list(ctx, `SELECT `+colorColumns+` FROM colors WHERE in_themes = 1 ORDER BY h, s, v, hex`)
}

func (r *ColorRepository) ListRound(ctx context.Context) ([]*domain.Color, error) {
	return r.list(ctx, `SELECT `+colorColumns+` FROM colors WHERE is_round = 1 ORDER BY hex`)
}

func (r *ColorRepository) ListByRoundedHex(ctx context.Context, roundedHex string) ([]*domain.Color, error) {
	return r.list(ctx, `SELECT `+colorColumns+` FROM colors WHERE rounded_hex = ? ORDER BY hex`, roundedHex)
}

func (r *ColorRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Color, error) {
	return database.WithRetry(ctx, streamRetries, func() ([]*domain.Color, error) {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()

		return scanColors(rows)
	})
}

func scanColor(s scanner) (*domain.Color, error) {
	var c domain.Color
	var isRound, inThemes int64
	if err := s.Scan(
		&c.Hex, &c.Label,
		&c.RGB.R, &c.RGB.G, &c.RGB.B,
		&c.HSV.H, &c.HSV.S, &c.HSV.V,
		&c.RoundedHex, &isRound, &inThemes,
	); err != nil {
		return nil, err
	}
	c.IsRound = isRound == 1
	c.InThemes = inThemes == 1
	return &c, nil
}

func scanColors(rows *sql.Rows) ([]*domain.Color, error) {
	var colors []*domain.Color
	for rows.Next() {
		c, err := scanColor(rows)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}
