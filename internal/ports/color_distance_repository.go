package ports

import (
	"context"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

// ColorDistanceRepository stores each unordered pair once, in canonical order.
// Implementations canonicalize their arguments so either order may be passed.
type ColorDistanceRepository interface {
	Get(ctx context.Context, hexA, hexB string) (*domain.ColorDistance, error)
	// SaveIfAbsent inserts pairs that are not stored yet and reports how
	// many were written. Existing pairs are left untouched.
	SaveIfAbsent(ctx context.Context, pairs []*domain.ColorDistance) (int, error)
	// ListPartners returns the HexB of every stored pair whose HexA is hex.
	ListPartners(ctx context.Context, hex string) ([]string, error)
	// ListNear returns pairs containing hex with distance < maxDistance,
	// ordered by ascending distance.
	ListNear(ctx context.Context, hex string, maxDistance float64) ([]*domain.ColorDistance, error)
}
