package about

import (
	"embed"

	"portalapi/internal/content/defaults"
)

//go:embed defaults.yaml
var defaultsFS embed.FS

type bundle struct {
	CommunitySupport CommunitySupport `yaml:"communitySupport"`
}

var staticDefaults = defaults.MustLoad[bundle](defaultsFS, "defaults.yaml")

// DefaultCommunitySupport is served when the backend is unreachable.
func DefaultCommunitySupport() CommunitySupport {
	return staticDefaults.CommunitySupport
}
