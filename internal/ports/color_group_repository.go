package ports

import (
	"context"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

type ColorGroupRepository interface {
	Create(ctx context.Context, group *domain.ColorGroup) error
	GetByCodename(ctx context.Context, codename string) (*domain.ColorGroup, error)
	List(ctx context.Context) ([]*domain.ColorGroup, error)
	Memberships(ctx context.Context, colorHex string) ([]*domain.ColorGroup, error)
	AddMembership(ctx context.Context, colorHex, groupID string) error
	RemoveMembership(ctx context.Context, colorHex, groupID string) error
	ListColors(ctx context.Context, groupID string) ([]*domain.Color, error)
}
