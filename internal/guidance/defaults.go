package guidance

import (
	"embed"

	"portalapi/internal/content/defaults"
)

//go:embed defaults.yaml
var defaultsFS embed.FS

type bundle struct {
	PageTitle       string `yaml:"pageTitle"`
	PageDescription string `yaml:"pageDescription"`
	FAQ             []FAQ  `yaml:"faq"`
}

var staticDefaults = defaults.MustLoad[bundle](defaultsFS, "defaults.yaml")

// DefaultFAQ is served when the FAQ endpoint is unreachable or has no active
// question.
func DefaultFAQ() []FAQ { return append([]FAQ(nil), staticDefaults.FAQ...) }
