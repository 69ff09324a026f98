// Package defaults loads the static default bundles that back the content
// fallbacks. Each content area embeds its own YAML bundle.
package defaults

import (
	"bytes"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Load decodes the named YAML document from fsys into T. Unknown keys are
// rejected so a stale bundle fails loudly instead of silently dropping data.
func Load[T any](fsys fs.FS, name string) (T, error) {
	var out T
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return out, fmt.Errorf("defaults: read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("defaults: decode %s: %w", name, err)
	}
	return out, nil
}

// MustLoad is Load for bundles embedded at build time.
func MustLoad[T any](fsys fs.FS, name string) T {
	v, err := Load[T](fsys, name)
	if err != nil {
		panic(err)
	}
	return v
}
