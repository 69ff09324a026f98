package menu

import (
	"context"
	"fmt"

	"portalapi/internal/content/normalize"
	"portalapi/internal/products"
)

// Catalog is the slice of the products service the menu reads.
type Catalog interface {
	Load(ctx context.Context) (products.Catalog, error)
}

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Load builds the menu from the live catalogues. Any failure other than the
// caller going away serves DefaultMenu instead.
func (s *Service) Load(ctx context.Context) ([]Section, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("menu: %w", err)
		}
		return DefaultMenu(), nil
	}
	return Build(cat), nil
}

// Build lays the catalogue out as Cuentas, Tarjetas, Préstamos and
// Certificados.
func Build(cat products.Catalog) []Section {
	h := staticDefaults.Sections
	accounts := section(h.Accounts, cat.Accounts, func(a products.Account) Item {
		return Item{Text: a.Title, Href: "/productos/cuenta/" + normalize.Slug(a.Title), Image: a.AccountImage, Category: a.Category}
	})
	cards := section(h.Cards, cat.Cards, func(c products.Card) Item {
		return Item{Text: c.Title, Href: "/productos/tarjeta/" + c.Slug, Image: c.CardImage, Category: c.CardType}
	})
	loans := section(h.Loans, cat.Loans, func(l products.Loan) Item {
		return Item{Text: l.Title, Href: "/productos/prestamo/" + l.Slug, Image: l.BannerImage, Category: l.LoanType}
	})
	certs := section(h.Certificates, cat.Certificates, func(c products.Certificate) Item {
		return Item{Text: c.Title, Href: "/productos/certificado/" + c.Slug, Image: c.CertificateImage, Category: c.CertificateType}
	})
	return []Section{accounts, cards, loans, certs}
}

func section[T any](h heading, in []T, item func(T) Item) Section {
	s := Section{Text: h.Text, Icon: h.Icon, Image: h.Image, SubItems: make([]Item, 0, len(in))}
	for _, v := range in {
		it := item(v)
		if it.Image == "" {
			it.Image = h.ItemImage
		}
		s.SubItems = append(s.SubItems, it)
	}
	return s
}
