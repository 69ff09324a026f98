// Package guidance loads the financial guidance page: saving tips, the
// illustrated slider and the frequently asked questions.
package guidance

type Page struct {
	PageTitle       string  `json:"pageTitle"`
	PageDescription string  `json:"pageDescription"`
	Tips            []Tip   `json:"tips"`
	SliderSlides    []Slide `json:"sliderSlides"`
	FAQItems        []FAQ   `json:"faqItems"`
}

type Tip struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Link        string `json:"link"`
	Order       int    `json:"order"`
}

// Slide is one slider card. Image is empty when the backend stores none.
type Slide struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FAQ struct {
	ID       int    `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Order    int    `json:"order" yaml:"order"`
}
