package normalize

import "strings"

// WithMediaBase sets the prefix applied to relative image paths.
func WithMediaBase(base string) Option {
	return func(n *Normalizer) { n.mediaBase = strings.TrimRight(base, "/") }
}

// Image reads f as an image reference and resolves relative paths against
// the media base. Absolute and data URLs are returned unchanged.
func (rd Reader) Image(f Field) string {
	return rd.n.MediaURL(rd.String(f))
}

// MediaURL resolves one image reference.
func (n *Normalizer) MediaURL(ref string) string {
	if ref == "" || n == nil || n.mediaBase == "" {
		return ref
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") || strings.HasPrefix(lower, "data:") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return n.mediaBase + ref
}
