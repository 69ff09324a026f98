package locations

import (
	"embed"

	"portalapi/internal/content/defaults"
)

//go:embed defaults.yaml
var defaultsFS embed.FS

type bundle struct {
	Locations []Location `yaml:"locations"`
}

var staticDefaults = defaults.MustLoad[bundle](defaultsFS, "defaults.yaml")

// DefaultLocations returns a fresh copy of the bundled directory.
func DefaultLocations() []Location {
	out := make([]Location, len(staticDefaults.Locations))
	copy(out, staticDefaults.Locations)
	return out
}
