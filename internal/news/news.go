// Package news loads the news feed and the promotions board.
package news

type Page struct {
	News       Feed[Article]   `json:"news"`
	Promotions Feed[Promotion] `json:"promotions"`
}

// Feed is a bannered list of slides.
type Feed[T any] struct {
	Banner Banner `json:"banner"`
	Slides []T    `json:"slides"`
}

type Banner struct {
	Title    string `json:"title" yaml:"title"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

// Block is one piece of rich content. Lists carry Items, every other type
// carries Text.
type Block struct {
	Type  string   `json:"type" yaml:"type"`
	Text  string   `json:"text,omitempty" yaml:"text,omitempty"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
}

type Media struct {
	Type    string `json:"type" yaml:"type"`
	URL     string `json:"url" yaml:"url"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

type Link struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Article struct {
	ID           int      `json:"id" yaml:"id"`
	Image        string   `json:"image" yaml:"image"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Date         string   `json:"date" yaml:"date"`
	Author       string   `json:"author,omitempty" yaml:"author,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags         []string `json:"tags" yaml:"tags"`
	FullContent  []Block  `json:"fullContent" yaml:"fullContent"`
	Media        []Media  `json:"media" yaml:"media"`
	RelatedLinks []Link   `json:"relatedLinks" yaml:"relatedLinks"`
}

type Promotion struct {
	ID           int      `json:"id" yaml:"id"`
	Image        string   `json:"image" yaml:"image"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Date         string   `json:"date" yaml:"date"`
	Slug         string   `json:"slug" yaml:"slug"`
	ValidUntil   string   `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags         []string `json:"tags" yaml:"tags"`
	Content      []Block  `json:"content" yaml:"content"`
	Media        []Media  `json:"media" yaml:"media"`
	RelatedLinks []Link   `json:"relatedLinks" yaml:"relatedLinks"`
	Terms        []string `json:"terms" yaml:"terms"`
}
