package docmark

import (
	"errors"

	"github.com/alnah/go-docmark/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrNoLookup           = errors.New("a lookup function is required")
	ErrInvalidPrefix      = errors.New("invalid custom reference prefix")
	ErrInvalidURLTemplate = errors.New("invalid URL template")

	// ErrRender matches every backend rendering failure. It is session-fatal.
	ErrRender = render.ErrRender
)
