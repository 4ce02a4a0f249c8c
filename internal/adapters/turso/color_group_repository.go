package turso

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

const groupColumns = `g.id, g.codename, g.label, g.description, g.category, g.display_color`

type ColorGroupRepository struct {
	db *sql.DB
}

func NewColorGroupRepository(db *sql.DB) *ColorGroupRepository {
	return &ColorGroupRepository{db: db}
}

func (r *ColorGroupRepository) Create(ctx context.Context, g *domain.ColorGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO color_groups (id, codename, label, description, category, display_color)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.ID, g.Codename, g.Label, util.NullStringPtr(g.Description), string(g.Category), g.DisplayColor)
	return mapError(err)
}

func (r *ColorGroupRepository) GetByCodename(ctx context.Context, codename string) (*domain.ColorGroup, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM color_groups g WHERE g.codename = ?`, codename)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *ColorGroupRepository) List(ctx context.Context) ([]*domain.ColorGroup, error) {
	return r.list(ctx, `SELECT `+groupColumns+` FROM color_groups g ORDER BY g.category, g.label`)
}

func (r *ColorGroupRepository) Memberships(ctx context.Context, colorHex string) ([]*domain.ColorGroup, error) {
	return r.list(ctx, `
		SELECT `+groupColumns+`
		FROM color_groups g
		JOIN color_group_members m ON m.group_id = g.id
		WHERE m.color_hex = ?
		ORDER BY g.category, g.label
	`, colorHex)
}

func (r *ColorGroupRepository) AddMembership(ctx context.Context, colorHex, groupID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO color_group_members (color_hex, group_id) VALUES (?, ?)
		ON CONFLICT (color_hex, group_id) DO NOTHING
	`, colorHex, groupID)
	return err
}

func (r *ColorGroupRepository) RemoveMembership(ctx context.Context, colorHex, groupID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM color_group_members WHERE color_hex = ? AND group_id = ?
	`, colorHex, groupID)
	return err
}

func (r *ColorGroupRepository) ListColors(ctx context.Context, groupID string) ([]*domain.Color, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.hex, c.label, c.r, c.g, c.b, c.h, c.s, c.v, c.rounded_hex, c.is_round, c.in_themes
		FROM colors c
		JOIN color_group_members m ON m.color_hex = c.hex
		WHERE m.group_id = ?
		ORDER BY c.hex
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanColors(rows)
}

func (r *ColorGroupRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ColorGroup, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var groups []*domain.ColorGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func scanGroup(s scanner) (*domain.ColorGroup, error) {
	var g domain.ColorGroup
	var description sql.NullString
	var category string
	if err := s.Scan(&g.ID, &g.Codename, &g.Label, &description, &category, &g.DisplayColor); err != nil {
		return nil, err
	}
	g.Description = util.NullStringToPtr(description)
	g.Category = domain.ColorGroupCategory(category)
	return &g, nil
}
