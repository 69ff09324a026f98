// Package about assembles the "Nosotros" page: institutional sections, the
// board of directors and the community support programme.
package about

import "portalapi/internal/icon"

type Page struct {
	Hero             Hero              `json:"hero"`
	WhoWeAre         Section           `json:"quienesSomos"`
	History          Section           `json:"nuestraHistoria"`
	Mission          Statement         `json:"mision"`
	Vision           Statement         `json:"vision"`
	Values           Values            `json:"valores"`
	Board            []Director        `json:"consejoDirectores"`
	CommunitySupport *CommunitySupport `json:"communitySupport,omitempty"`
	// Unavailable lists optional sections that could not be loaded.
	Unavailable []string `json:"unavailable,omitempty"`
}

type Hero struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	ImageSrc   string   `json:"imageSrc"`
	ImageAlt   string   `json:"imageAlt"`
}

// Statement is a mission or vision; the backend sends either one string or
// a list of paragraphs.
type Statement struct {
	Title       string   `json:"title"`
	Description []string `json:"description"`
}

type Values struct {
	Title string  `json:"title"`
	Items []Value `json:"items"`
}

type Value struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        icon.Tag `json:"icon"`
}

type Director struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	ImageSrc string `json:"imageSrc"`
	ImageAlt string `json:"imageAlt"`
}

type CommunitySupport struct {
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Categories  []Category   `json:"categories" yaml:"categories"`
	Initiatives []Initiative `json:"initiatives" yaml:"initiatives"`
}

type Category struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Icon        icon.Tag `json:"icon" yaml:"icon"`
	Description string   `json:"description" yaml:"description"`
}

type Initiative struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	Category    string `json:"category" yaml:"category"`
}
