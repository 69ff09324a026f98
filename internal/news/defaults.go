package news

import (
	"embed"

	"portalapi/internal/content/defaults"
)

//go:embed defaults.yaml
var defaultsFS embed.FS

type bundle struct {
	NewsBanner       Banner      `yaml:"newsBanner"`
	PromotionsBanner Banner      `yaml:"promotionsBanner"`
	News             []Article   `yaml:"news"`
	Promotions       []Promotion `yaml:"promotions"`
}

var staticDefaults = defaults.MustLoad[bundle](defaultsFS, "defaults.yaml")

func DefaultArticles() []Article { return append([]Article(nil), staticDefaults.News...) }

func DefaultPromotions() []Promotion { return append([]Promotion(nil), staticDefaults.Promotions...) }
