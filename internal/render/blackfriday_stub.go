//go:build noblackfriday

package render

import "fmt"

func newBlackfriday() (*Backend, error) {
	return nil, fmt.Errorf("%w: %s (built with noblackfriday)", ErrUnavailable, Blackfriday)
}
