package domain

import (
	"errors"

	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
)

var (
	// ErrInvalidColorFormat is returned for hex strings that are not 3 or 6 hex digits.
	ErrInvalidColorFormat = colorspace.ErrInvalidFormat

	// ErrUnresolvedTheme means a parsed layer label matched no theme.
	// Callers should offer to create the theme rather than fail.
	ErrUnresolvedTheme = errors.New("no theme matches layer label")

	// ErrConstraintConflict is returned by repositories when a write collides
	// with a unique constraint. Retry the whole operation.
	ErrConstraintConflict = errors.New("constraint conflict")

	// ErrNoBucketRepresentative means a color's bucket color has not been seeded.
	ErrNoBucketRepresentative = errors.New("no bucket representative")
)
