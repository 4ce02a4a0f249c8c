package ports

import (
	"context"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

// ColorRepository persists colors keyed by normalized hex.
// GetByHex returns (nil, nil) when the color does not exist.
type ColorRepository interface {
	GetByHex(ctx context.Context, hex string) (*domain.Color, error)
	Create(ctx context.Context, color *domain.Color) error
	Update(ctx context.Context, color *domain.Color) error
	ListInThemes(ctx context.Context) ([]*domain.Color, error)
	ListRound(ctx context.Context) ([]*domain.Color, error)
	ListByRoundedHex(ctx context.Context, roundedHex string) ([]*domain.Color, error)
}
