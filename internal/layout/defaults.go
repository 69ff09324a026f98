package layout

import (
	"embed"

	"portalapi/internal/content/defaults"
)

//go:embed defaults.yaml
var defaultsFS embed.FS

type bundle struct {
	Header Header `yaml:"header"`
	Footer Footer `yaml:"footer"`
}

var staticDefaults = defaults.MustLoad[bundle](defaultsFS, "defaults.yaml")

func DefaultNavigation() Navigation { return staticDefaults.Header.Navigation }

// DefaultExchangeRate is served when the exchange endpoint is unreachable or
// has no active rate.
func DefaultExchangeRate() ExchangeRate {
	ex := staticDefaults.Header.Exchange
	ex.Rates = append([]Rate(nil), ex.Rates...)
	return ex
}

func DefaultFooter() Footer { return staticDefaults.Footer }

// initialHeader is what readers see before the first successful load.
func initialHeader() Header {
	return Header{
		Exchange: ExchangeRate{
			Base:         exchangeBase,
			ShowBuyRate:  true,
			ShowSellRate: true,
			Rates:        []Rate{{Currency: "US DOLAR"}},
		},
	}
}
