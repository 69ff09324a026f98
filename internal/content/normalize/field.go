package normalize

import (
	"strings"
	"unicode"
)

// Field is one canonical attribute and the backend keys that may carry it,
// in priority order.
type Field struct {
	Name     string
	Aliases  []string
	Optional bool
}

// F declares a field from its canonical camelCase name. The aliases are the
// snake_case, PascalCase and camelCase spellings, tried in that order.
func F(name string) Field {
	return Field{Name: name, Aliases: dedupe([]string{snakeCase(name), pascalCase(name), name})}
}

// Aliases declares a field with an explicit alias list.
func Aliases(name string, aliases ...string) Field {
	return Field{Name: name, Aliases: dedupe(aliases)}
}

// Or appends lower-priority aliases.
func (f Field) Or(aliases ...string) Field {
	f.Aliases = dedupe(append(append([]string(nil), f.Aliases...), aliases...))
	return f
}

// Opt marks the field optional: its absence is not reported as a gap.
func (f Field) Opt() Field {
	f.Optional = true
	return f
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pascalCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
