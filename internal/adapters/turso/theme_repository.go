package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

type LayoutRepository struct {
	db *sql.DB
}

func NewLayoutRepository(db *sql.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

func (r *LayoutRepository) Create(ctx context.Context, l *domain.Layout) error {
	l.ID = newID(l.ID)
	l.CreatedAt = createdAt(l.CreatedAt)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO layouts (id, name, codename, label_id, official, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.ID, l.Name, l.Codename, util.NullStringPtr(l.LabelID), util.BoolToInt64(l.Official), l.CreatedAt.Format(time.RFC3339))
	return mapError(err)
}

func (r *LayoutRepository) GetByID(ctx context.Context, id string) (*domain.Layout, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *LayoutRepository) GetByCodename(ctx context.Context, codename string) (*domain.Layout, error) {
	return r.get(ctx, `WHERE codename = ?`, codename)
}

func (r *LayoutRepository) get(ctx context.Context, where string, arg string) (*domain.Layout, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, codename, label_id, official, created_at FROM layouts `+where, arg)
	l, err := scanLayout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LayoutRepository) List(ctx context.Context) ([]*domain.Layout, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, codename, label_id, official, created_at FROM layouts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var layouts []*domain.Layout
	for rows.Next() {
		l, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, rows.Err()
}

func scanLayout(s scanner) (*domain.Layout, error) {
	var l domain.Layout
	var labelID sql.NullString
	var official int64
	var created string
	if err := s.Scan(&l.ID, &l.Name, &l.Codename, &labelID, &official, &created); err != nil {
		return nil, err
	}
	l.LabelID = util.NullStringToPtr(labelID)
	l.Official = official == 1
	l.CreatedAt = util.ParseTimeRFC3339(created)
	return &l, nil
}

const themeColumns = `id, layout_id, name, label_id, official, created_at`

type ThemeRepository struct {
	db *sql.DB
}

func NewThemeRepository(db *sql.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

func (r *ThemeRepository) Create(ctx context.Context, t *domain.Theme) error {
	t.ID = newID(t.ID)
	t.CreatedAt = createdAt(t.CreatedAt)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO themes (`+themeColumns+`) VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.LayoutID, t.Name, t.LabelID, util.BoolToInt64(t.Official), t.CreatedAt.Format(time.RFC3339))
	return mapError(err)
}

func (r *ThemeRepository) GetByID(ctx context.Context, id string) (*domain.Theme, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *ThemeRepository) GetByLabel(ctx context.Context, labelID string) (*domain.Theme, error) {
	return r.get(ctx, `WHERE label_id = ?`, labelID)
}

func (r *ThemeRepository) get(ctx context.Context, where string, arg string) (*domain.Theme, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM themes `+where, arg)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ThemeRepository) List(ctx context.Context) ([]*domain.Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+themeColumns+` FROM themes ORDER BY layout_id, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var themes []*domain.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

func (r *ThemeRepository) ListTags(ctx context.Context, themeID string) ([]*domain.StyleProperty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.codename, p.label, p.theme_use, p.layout_use
		FROM style_properties p
		JOIN theme_properties tp ON tp.property_id = p.id
		WHERE tp.theme_id = ?
		ORDER BY p.codename
	`, themeID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanProperties(rows)
}

func (r *ThemeRepository) AddTag(ctx context.Context, themeID, propertyID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO theme_properties (theme_id, property_id) VALUES (?, ?)
		ON CONFLICT (theme_id, property_id) DO NOTHING
	`, themeID, propertyID)
	return err
}

func (r *ThemeRepository) RemoveTag(ctx context.Context, themeID, propertyID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM theme_properties WHERE theme_id = ? AND property_id = ?
	`, themeID, propertyID)
	return err
}

func scanTheme(s scanner) (*domain.Theme, error) {
	var t domain.Theme
	var official int64
	var created string
	if err := s.Scan(&t.ID, &t.LayoutID, &t.Name, &t.LabelID, &official, &created); err != nil {
		return nil, err
	}
	t.Official = official == 1
	t.CreatedAt = util.ParseTimeRFC3339(created)
	return &t, nil
}

const themeColorColumns = `id, theme_id, color_hex, category, variables`

type ThemeColorRepository struct {
	db *sql.DB
}

func NewThemeColorRepository(db *sql.DB) *ThemeColorRepository {
	return &ThemeColorRepository{db: db}
}

func (r *ThemeColorRepository) Get(ctx context.Context, themeID, colorHex string) (*domain.ThemeColor, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+themeColorColumns+`
		FROM theme_colors
		WHERE theme_id = ? AND color_hex = ?
		ORDER BY CASE category WHEN 'feature' THEN 0 ELSE 1 END
		LIMIT 1
	`, themeID, colorHex)
	tc, err := scanThemeColor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func (r *ThemeColorRepository) Create(ctx context.Context, tc *domain.ThemeColor) error {
	if !tc.Category.Valid() {
		return fmt.Errorf("invalid theme color category %q", tc.Category)
	}
	tc.ID = newID(tc.ID)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO theme_colors (`+themeColorColumns+`) VALUES (?, ?, ?, ?, ?)
	`, tc.ID, tc.ThemeID, tc.ColorHex, string(tc.Category), tc.Variables)
	return mapError(err)
}

func (r *ThemeColorRepository) UpdateVariables(ctx context.Context, id, variables string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE theme_colors SET variables = ? WHERE id = ?`, variables, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("theme color %s not found", id)
	}
	return nil
}

func (r *ThemeColorRepository) ListByTheme(ctx context.Context, themeID string) ([]*domain.ThemeColor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+themeColorColumns+`
		FROM theme_colors
		WHERE theme_id = ?
		ORDER BY category DESC, color_hex
	`, themeID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tcs []*domain.ThemeColor
	for rows.Next() {
		tc, err := scanThemeColor(rows)
		if err != nil {
			return nil, err
		}
		tcs = append(tcs, tc)
	}
	return tcs, rows.Err()
}

func (r *ThemeColorRepository) CountByRoundedHex(ctx context.Context, roundedHex string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM theme_colors tc
		JOIN colors c ON c.hex = tc.color_hex
		WHERE c.rounded_hex = ?
	`, roundedHex).Scan(&n)
	return n, err
}

func scanThemeColor(s scanner) (*domain.ThemeColor, error) {
	var tc domain.ThemeColor
	var category string
	if err := s.Scan(&tc.ID, &tc.ThemeID, &tc.ColorHex, &category, &tc.Variables); err != nil {
		return nil, err
	}
	tc.Category = domain.ThemeColorCategory(category)
	return &tc, nil
}

type StylePropertyRepository struct {
	db *sql.DB
}

func NewStylePropertyRepository(db *sql.DB) *StylePropertyRepository {
	return &StylePropertyRepository{db: db}
}

func (r *StylePropertyRepository) Create(ctx context.Context, p *domain.StyleProperty) error {
	p.ID = newID(p.ID)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO style_properties (id, codename, label, theme_use, layout_use)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Codename, p.Label, util.BoolToInt64(p.ThemeUse), util.BoolToInt64(p.LayoutUse))
	return mapError(err)
}

func (r *StylePropertyRepository) GetByCodename(ctx context.Context, codename string) (*domain.StyleProperty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, codename, label, theme_use, layout_use FROM style_properties WHERE codename = ?
	`, codename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	props, err := scanProperties(rows)
	if err != nil || len(props) == 0 {
		return nil, err
	}
	return props[0], nil
}

func (r *StylePropertyRepository) List(ctx context.Context) ([]*domain.StyleProperty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, codename, label, theme_use, layout_use FROM style_properties ORDER BY label
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanProperties(rows)
}

func scanProperties(rows *sql.Rows) ([]*domain.StyleProperty, error) {
	var props []*domain.StyleProperty
	for rows.Next() {
		var p domain.StyleProperty
		var themeUse, layoutUse int64
		if err := rows.Scan(&p.ID, &p.Codename, &p.Label, &themeUse, &layoutUse); err != nil {
			return nil, err
		}
		p.ThemeUse = themeUse == 1
		p.LayoutUse = layoutUse == 1
		props = append(props, &p)
	}
	return props, rows.Err()
}
