package menu

import (
	"embed"

	"portalapi/internal/content/defaults"
)

//go:embed defaults.yaml
var defaultsFS embed.FS

type heading struct {
	Text      string `yaml:"text"`
	Icon      string `yaml:"icon"`
	Image     string `yaml:"image"`
	ItemImage string `yaml:"itemImage"`
}

type bundle struct {
	Sections struct {
		Accounts     heading `yaml:"accounts"`
		Cards        heading `yaml:"cards"`
		Loans        heading `yaml:"loans"`
		Certificates heading `yaml:"certificates"`
	} `yaml:"sections"`
	Fallback []Section `yaml:"fallback"`
}

var staticDefaults = defaults.MustLoad[bundle](defaultsFS, "defaults.yaml")

// DefaultMenu returns a deep copy of the fallback menu.
func DefaultMenu() []Section {
	out := make([]Section, len(staticDefaults.Fallback))
	for i, s := range staticDefaults.Fallback {
		s.SubItems = append([]Item(nil), s.SubItems...)
		out[i] = s
	}
	return out
}
