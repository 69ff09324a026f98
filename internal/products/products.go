// Package products loads the product catalogue: savings accounts, loans,
// cards and investment certificates.
package products

import "portalapi/internal/icon"

type Catalog struct {
	Accounts     []Account     `json:"accounts"`
	Loans        []Loan        `json:"loans"`
	Cards        []Card        `json:"cards"`
	Certificates []Certificate `json:"certificates"`
}

type Benefit struct {
	Icon icon.Tag `json:"icon"`
	Text string   `json:"text"`
}

type Account struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	BannerImage  string    `json:"bannerImage"`
	AccountImage string    `json:"accountImage"`
	Category     string    `json:"category"`
	Features     []string  `json:"features"`
	Requirements []string  `json:"requirements"`
	Benefits     []Benefit `json:"benefits"`
}

type Loan struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	LoanType          string   `json:"loanType"`
	Details           []string `json:"details"`
	RequirementsTitle string   `json:"requirementsTitle"`
	Requirements      []string `json:"requirements"`
	Slug              string   `json:"slug"`
	BannerImage       string   `json:"bannerImage"`
}

type Card struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	BannerImage  string    `json:"bannerImage"`
	CardImage    string    `json:"cardImage"`
	CardType     string    `json:"cardType"`
	Features     []string  `json:"features"`
	Requirements []string  `json:"requirements"`
	Benefits     []Benefit `json:"benefits"`
	Slug         string    `json:"slug"`
}

type Certificate struct {
	ID               int                `json:"id"`
	Title            string             `json:"title"`
	Subtitle         string             `json:"subtitle"`
	Description      string             `json:"description"`
	BannerImage      string             `json:"bannerImage"`
	CertificateImage string             `json:"certificateImage"`
	CertificateType  string             `json:"certificateType"`
	CTAApply         string             `json:"ctaApply"`
	CTARates         string             `json:"ctaRates"`
	Benefits         TitledList[Item]   `json:"benefits"`
	Investment       Investment         `json:"investment"`
	Rates            TitledList[Rate]   `json:"rates"`
	Requirements     TitledList[string] `json:"requirements"`
	DepositRates     DepositRates       `json:"depositRates"`
	FAQ              TitledList[FAQ]    `json:"faq"`
	Slug             string             `json:"slug"`
}

// TitledList is a headed block of items, the shape most certificate
// sections share.
type TitledList[T any] struct {
	Title string `json:"title"`
	Items []T    `json:"items"`
}

type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Investment struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Details  []string `json:"details"`
	ImageURL string   `json:"imageUrl"`
}

type Rate struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DepositRate struct {
	Range string `json:"range"`
	Rate  string `json:"rate"`
	Term  string `json:"term"`
}

type DepositRates struct {
	Title     string        `json:"title"`
	Items     []DepositRate `json:"items"`
	ValidFrom string        `json:"validFrom"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
