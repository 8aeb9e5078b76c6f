//go:build nogoldmark

package render

import "fmt"

func newGoldmark() (*Backend, error) {
	return nil, fmt.Errorf("%w: %s (built with nogoldmark)", ErrUnavailable, Goldmark)
}
