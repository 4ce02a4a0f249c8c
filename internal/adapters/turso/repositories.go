package turso

import (
	"database/sql"

	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	Colors      ports.ColorRepository
	Layouts     ports.LayoutRepository
	Themes      ports.ThemeRepository
	ThemeColors ports.ThemeColorRepository
	Distances   ports.ColorDistanceRepository
	Groups      ports.ColorGroupRepository
	Properties  ports.StylePropertyRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Colors:      NewColorRepository(db),
		Layouts:     NewLayoutRepository(db),
		Themes:      NewThemeRepository(db),
		ThemeColors: NewThemeColorRepository(db),
		Distances:   NewColorDistanceRepository(db),
		Groups:      NewColorGroupRepository(db),
		Properties:  NewStylePropertyRepository(db),
	}
}
