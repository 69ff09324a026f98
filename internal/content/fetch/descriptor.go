// Package fetch runs independent content API requests concurrently and
// decides, per request, between returning data, serving a bundled static
// default, or failing.
package fetch

import "fmt"

// Kind is the shape of the resource behind a descriptor.
type Kind int

const (
	// Single is one object. Envelopes and arrays yield their first element.
	Single Kind = iota
	// Collection is one page of results, or a bare array, in backend order.
	Collection
	// PaginatedCollection follows next cursors and is ordered by id.
	PaginatedCollection
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Collection:
		return "collection"
	case PaginatedCollection:
		return "paginated"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Descriptor identifies one backend resource request.
type Descriptor struct {
	Key  string
	Path string
	Kind Kind
	// Default is served when the backend is unreachable or answers 404.
	// Nil registers no default.
	Default any
	// Optional descriptors never fail a page load; a terminal outcome marks
	// their section unavailable instead.
	Optional bool
}

// Resource builds a Single descriptor.
func Resource(key, path string) Descriptor {
	return Descriptor{Key: key, Path: path, Kind: Single}
}

// List builds a Collection descriptor.
func List(key, path string) Descriptor {
	return Descriptor{Key: key, Path: path, Kind: Collection}
}

// Paginated builds a PaginatedCollection descriptor.
func Paginated(key, path string) Descriptor {
	return Descriptor{Key: key, Path: path, Kind: PaginatedCollection}
}

// WithDefault registers a static default.
func (d Descriptor) WithDefault(v any) Descriptor {
	d.Default = v
	return d
}

// AsOptional marks the descriptor optional.
func (d Descriptor) AsOptional() Descriptor {
	d.Optional = true
	return d
}
