package layout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/page"
)

const (
	pathContacts       = "/layout/contacts/"
	pathSocialNetworks = "/layout/social-networks/"
)

var (
	fChannelID    = normalize.F("id").Opt()
	fChannelName  = normalize.F("name")
	fChannelURL   = normalize.F("url")
	fChannelOrder = normalize.F("order").Opt()
	fActive       = normalize.F("isActive")
	fCreatedAt    = normalize.F("createdAt").Opt()
	fUpdatedAt    = normalize.F("updatedAt").Opt()
)

// Channel is one contact point or social network link.
type Channel struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Icon      string `json:"icon"`
	Order     int    `json:"order"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// channelKind is one of the two channel collections.
type channelKind struct {
	key  string
	path string
	noun string
}

var (
	contacts       = channelKind{key: "contacts", path: pathContacts, noun: "contact"}
	socialNetworks = channelKind{key: "socialNetworks", path: pathSocialNetworks, noun: "social network"}
)

// LoadContacts returns the active contacts ordered for display. An
// unreachable backend yields an empty list.
func (s *Service) LoadContacts(ctx context.Context) ([]Channel, error) {
	return s.channels(ctx, contacts)
}

func (s *Service) LoadSocialNetworks(ctx context.Context) ([]Channel, error) {
	return s.channels(ctx, socialNetworks)
}

func (s *Service) ContactByID(ctx context.Context, id int) (Channel, error) {
	return s.channelByID(ctx, contacts, id)
}

func (s *Service) SocialNetworkByID(ctx context.Context, id int) (Channel, error) {
	return s.channelByID(ctx, socialNetworks, id)
}

func (s *Service) channels(ctx context.Context, k channelKind) ([]Channel, error) {
	res := s.fetcher.FetchAll(ctx, fetch.Paginated(k.key, k.path).WithDefault([]Channel{}))
	area := "layout." + k.key
	items, err := fetch.Many(res, k.key, func(r normalize.Record) Channel { return s.channel(s.norm.Reader(area, r)) })
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	o := res.Outcome(k.key)
	if o.Status != fetch.StatusSuccess {
		return items, nil
	}
	out := make([]Channel, 0, len(items))
	for i, rec := range o.Records {
		if s.norm.Reader(area, rec).Bool(fActive) {
			out = append(out, items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// channelByID reads the detail endpoint. Unknown and inactive channels are
// page.ErrNotFound.
func (s *Service) channelByID(ctx context.Context, k channelKind, id int) (Channel, error) {
	key := k.key + "Detail"
	res := s.fetcher.FetchAll(ctx, fetch.Resource(key, k.path+strconv.Itoa(id)+"/"))

	var active bool
	ch, err := fetch.One(res, key, func(r normalize.Record) Channel {
		rd := s.norm.Reader("layout."+k.key, r)
		active = rd.Present() && rd.Bool(fActive)
		return s.channel(rd)
	})
	var fe *fetch.Error
	switch {
	case errors.As(err, &fe) && fe.HTTPStatus == http.StatusNotFound:
		return Channel{}, fmt.Errorf("%s %d: %w", k.noun, id, page.ErrNotFound)
	case err != nil:
		return Channel{}, fmt.Errorf("%s %d: %w", k.noun, id, err)
	case !active:
		return Channel{}, fmt.Errorf("%s %d: %w", k.noun, id, page.ErrNotFound)
	}
	return ch, nil
}

func (s *Service) channel(rd normalize.Reader) Channel {
	return Channel{
		ID:        rd.Int(fChannelID),
		Name:      rd.String(fChannelName),
		URL:       rd.String(fChannelURL),
		Icon:      rd.String(fIcon),
		Order:     rd.Int(fChannelOrder),
		CreatedAt: rd.String(fCreatedAt),
		UpdatedAt: rd.String(fUpdatedAt),
	}
}
