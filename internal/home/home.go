// Package home assembles the landing page.
package home

type Page struct {
	Slider         []Slide         `json:"slider"`
	Education      Education       `json:"educationSection"`
	ProductSection *ProductSection `json:"productSection,omitempty"`
	DebitCardPromo *Promo          `json:"debitCardPromo,omitempty"`
	PekeSummary    *AccountSummary `json:"pekeAccountSummary,omitempty"`
	// Unavailable lists optional sections that could not be loaded.
	Unavailable []string `json:"unavailable,omitempty"`
}

// Slide carries one image per breakpoint. Missing tablet and mobile images
// reuse the desktop one.
type Slide struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	ImageTablet string `json:"imageTablet"`
	ImageMobile string `json:"imageMobile"`
	Alt         string `json:"alt"`
	Order       int    `json:"-"`
}

type ProductSection struct {
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	ButtonText string    `json:"buttonText"`
	Products   []Product `json:"products"`
}

type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	ImageWidth  int    `json:"imageWidth,omitempty"`
	ImageHeight int    `json:"imageHeight,omitempty"`
}

type Education struct {
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Items      []EducationItem `json:"educationItems"`
	FooterText string          `json:"footerText"`
}

type EducationItem struct {
	Image       string `json:"image"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
}

type Promo struct {
	Title               string `json:"title"`
	HighlightedTitle    string `json:"highlightedTitle"`
	Description         string `json:"description"`
	PrimaryButtonText   string `json:"primaryButtonText"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	ImageURL            string `json:"imageUrl"`
	ImageAlt            string `json:"imageAlt"`
}

type AccountSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
	ImageURL    string `json:"imageUrl"`
	ImageAlt    string `json:"imageAlt"`
}
