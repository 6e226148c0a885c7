// Package yamlutil reads config files and writes preset dumps as YAML.
// It is the only importer of the YAML library.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds what Decode reads. Config files are a few hundred
// bytes; anything near this is not a config file.
var MaxInputSize = 256 << 10

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Decode reads one YAML document from r into v. Keys that do not match a
// field of v are errors; map-typed fields accept any key.
func Decode(r io.Reader, v any) error {
	if v == nil {
		return ErrNilDestination
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w (max %d bytes)", ErrInputTooLarge, MaxInputSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v to w as block YAML indented by two spaces. Map keys
// come out sorted.
func Encode(w io.Writer, v any) error {
	if err := yaml.NewEncoder(w, yaml.Indent(2)).Encode(v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
