// Package support loads the user support pages: service rates, rights and
// duties, abandoned accounts, account contracts, the texts heading the claim,
// fraud and suggestion forms, and the services directory.
package support

type ServiceRates struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Categories  []RateCategory `json:"categories"`
}

type RateCategory struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	Rates []ServiceRate `json:"rates"`
}

// ServiceRate is one tariff line. Details is HTML authored in the backend.
type ServiceRate struct {
	ID          int    `json:"id"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Rate        string `json:"rate"`
	Details     string `json:"details"`
}

type RightsAndDuties struct {
	PageTitle       string          `json:"pageTitle"`
	PageDescription string          `json:"pageDescription"`
	Sections        []RightsSection `json:"sections"`
}

type RightsSection struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	ButtonText     string  `json:"buttonText"`
	AdditionalInfo string  `json:"additionalInfo"`
	Images         []Image `json:"images"`
}

type Image struct {
	ID          int    `json:"id"`
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
}

type AbandonedAccounts struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	AccountTypes []AccountType `json:"accountTypes"`
	Years        []YearReports `json:"years"`
}

type AccountType struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// YearReports holds the two lists the bank publishes each year. A list not
// yet published is the zero Document.
type YearReports struct {
	Year      string   `json:"year"`
	Abandoned Document `json:"abandoned"`
	Inactive  Document `json:"inactive"`
}

type Document struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

type AccountContracts struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Contracts   []Contract `json:"contracts"`
	Categories  []string   `json:"categories"`
}

type Contract struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// FormPage is the heading text shown above one of the public forms.
type FormPage struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type ServicesPage struct {
	Title                 string          `json:"title"`
	Subtitle              string          `json:"subtitle"`
	SearchPlaceholder     string          `json:"searchPlaceholder"`
	NoResultsText         string          `json:"noResultsText"`
	InternetBankingURL    string          `json:"internetBankingUrl"`
	InternetBankingButton string          `json:"internetBankingButton"`
	Items                 []string        `json:"items"`
	ItemDetails           []ServiceDetail `json:"itemDetails"`
}

type ServiceDetail struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       string `json:"steps"`
	ImageURL    string `json:"imageUrl"`
	ImageAlt    string `json:"imageAlt"`
	PDFURL      string `json:"pdfUrl"`
}
