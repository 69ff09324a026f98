// Package layout loads the content shared by every page: header navigation,
// the exchange rate banner and the footer.
package layout

type Navigation struct {
	Individual  string `json:"individual" yaml:"individual"`
	Empresarial string `json:"empresarial" yaml:"empresarial"`
	// Menus holds the menu items per navigation type when the backend sends
	// them ("individual", "empresarial").
	Menus map[string][]string `json:"menus,omitempty" yaml:"menus,omitempty"`
}

type Rate struct {
	Currency string  `json:"currency" yaml:"currency"`
	BuyRate  float64 `json:"buyRate" yaml:"buyRate"`
	SellRate float64 `json:"sellRate" yaml:"sellRate"`
}

type ExchangeRate struct {
	Base         string `json:"base" yaml:"base"`
	LastUpdated  string `json:"lastUpdated" yaml:"lastUpdated"`
	ShowBuyRate  bool   `json:"showBuyRate" yaml:"showBuyRate"`
	ShowSellRate bool   `json:"showSellRate" yaml:"showSellRate"`
	Rates        []Rate `json:"rates" yaml:"rates"`
}

// Header is the navigation and exchange rate pair rendered on every page.
type Header struct {
	Navigation Navigation   `json:"navigation" yaml:"navigation"`
	Exchange   ExchangeRate `json:"exchange" yaml:"exchange"`
}

type Link struct {
	Text     string `json:"text" yaml:"text"`
	To       string `json:"to" yaml:"to"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
	External bool   `json:"isExternalLink,omitempty" yaml:"isExternalLink,omitempty"`
}

type FooterSection struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
	Items []Link `json:"items" yaml:"items"`
}

type Company struct {
	Name        string `json:"name" yaml:"name"`
	ShortName   string `json:"shortName" yaml:"shortName"`
	Logo        string `json:"logo" yaml:"logo"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Copyright   string `json:"copyright" yaml:"copyright"`
}

type Location struct {
	Title   string `json:"title" yaml:"title"`
	Address string `json:"address" yaml:"address"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

type Footer struct {
	Sections []FooterSection `json:"sections" yaml:"sections"`
	Company  Company         `json:"company" yaml:"company"`
	Location Location        `json:"location" yaml:"location"`
}
