// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Option adjusts decoding.
type Option func(*decodeOptions)

type decodeOptions struct {
	strict bool
}

// Strict rejects unknown fields and duplicate keys.
func Strict() Option {
	return func(o *decodeOptions) {
		o.strict = true
	}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v. Syntax errors carry line and column.
func Unmarshal(data []byte, v any, opts ...Option) error {
	if err := validateInput(data, v); err != nil {
		return err
	}

	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var yamlOpts []yaml.DecodeOption
	if o.strict {
		yamlOpts = append(yamlOpts, yaml.Strict(), yaml.DisallowDuplicateKey())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yamlOpts...); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// ReadFile reads at most MaxInputSize+1 bytes from path and decodes them into v.
func ReadFile(path string, v any, opts ...Option) error {
	f, err := os.Open(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading %s: %w", path, err)
	}
	return Unmarshal(data, v, opts...)
}
