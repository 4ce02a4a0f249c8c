package ports

import "context"

// LayerArchive keeps the raw text of imported layers.
type LayerArchive interface {
	Store(ctx context.Context, label string, text string) (storedPath string, err error)
	Load(ctx context.Context, storedPath string) (string, error)
}
