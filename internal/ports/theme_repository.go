package ports

import (
	"context"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

type LayoutRepository interface {
	Create(ctx context.Context, layout *domain.Layout) error
	GetByID(ctx context.Context, id string) (*domain.Layout, error)
	GetByCodename(ctx context.Context, codename string) (*domain.Layout, error)
	List(ctx context.Context) ([]*domain.Layout, error)
}

// ThemeRepository persists themes and their style property tags.
type ThemeRepository interface {
	Create(ctx context.Context, theme *domain.Theme) error
	GetByID(ctx context.Context, id string) (*domain.Theme, error)
	GetByLabel(ctx context.Context, labelID string) (*domain.Theme, error)
	List(ctx context.Context) ([]*domain.Theme, error)
	ListTags(ctx context.Context, themeID string) ([]*domain.StyleProperty, error)
	AddTag(ctx context.Context, themeID, propertyID string) error
	RemoveTag(ctx context.Context, themeID, propertyID string) error
}

// ThemeColorRepository persists theme/color associations.
type ThemeColorRepository interface {
	// Get returns the association for (theme, color) regardless of category,
	// preferring the feature row when both exist.
	Get(ctx context.Context, themeID, colorHex string) (*domain.ThemeColor, error)
	Create(ctx context.Context, tc *domain.ThemeColor) error
	UpdateVariables(ctx context.Context, id, variables string) error
	ListByTheme(ctx context.Context, themeID string) ([]*domain.ThemeColor, error)
	CountByRoundedHex(ctx context.Context, roundedHex string) (int64, error)
}

type StylePropertyRepository interface {
	Create(ctx context.Context, property *domain.StyleProperty) error
	GetByCodename(ctx context.Context, codename string) (*domain.StyleProperty, error)
	List(ctx context.Context) ([]*domain.StyleProperty, error)
}
