// Package menu builds the products mega menu from the four catalogues.
package menu

type Section struct {
	Text     string `json:"text" yaml:"text"`
	Icon     string `json:"icon" yaml:"icon"`
	Image    string `json:"image" yaml:"image"`
	SubItems []Item `json:"subItems" yaml:"subItems"`
}

type Item struct {
	Text     string `json:"text" yaml:"text"`
	Href     string `json:"href" yaml:"href"`
	Image    string `json:"image" yaml:"image"`
	Category string `json:"category" yaml:"category"`
}
