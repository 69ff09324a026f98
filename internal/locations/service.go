package locations

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/page"
)

const pathLocations = "/locations/"

// Branch hours are local to the Dominican Republic, which keeps UTC-4 all
// year.
var localZone = time.FixedZone("AST", -4*60*60)

var (
	fID          = normalize.F("id")
	fType        = normalize.F("type").Or("location_type")
	fName        = normalize.F("name")
	fAddress     = normalize.F("address")
	fPhone       = normalize.F("phone").Opt()
	fHours       = normalize.F("hours").Opt()
	fOpening     = normalize.F("openingTime")
	fClosing     = normalize.F("closingTime")
	fCoordinates = normalize.F("coordinates")
	fLat         = normalize.F("lat").Or("latitude")
	fLng         = normalize.F("lng").Or("longitude", "lon")
	fServices    = normalize.F("services").Opt()
)

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
	now     func() time.Time
	zone    *time.Location
}

type Option func(*Service)

// WithClock overrides the time source used for open-now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithZone overrides the zone branch hours are expressed in.
func WithZone(loc *time.Location) Option { return func(s *Service) { s.zone = loc } }

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer, opts ...Option) *Service {
	s := &Service{fetcher: fetcher, norm: norm, now: time.Now, zone: localZone}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load fetches the directory and annotates every location with its
// schedule and whether it is open now.
func (s *Service) Load(ctx context.Context) (Directory, error) {
	res := s.fetcher.FetchAll(ctx, fetch.Paginated("locations", pathLocations).WithDefault(DefaultLocations()))
	locs, err := fetch.Many(res, "locations", s.location)
	if err != nil {
		return Directory{}, fmt.Errorf("locations: %w", err)
	}

	now := s.now().In(s.zone)
	d := Directory{Locations: make([]Location, 0, len(locs))}
	for _, l := range locs {
		l.ScheduleText = ScheduleText(l.Type, l.Hours)
		l.IsOpen = IsOpen(l.Type, l.Hours, now)
		if l.Type == ATM {
			l.Availability = "24/7"
			d.ATMs++
		} else {
			d.Branches++
		}
		d.Locations = append(d.Locations, l)
	}
	return d, nil
}

// Filter keeps the locations of one kind. An empty kind keeps everything.
func (d Directory) Filter(kind Kind) Directory {
	if kind == "" {
		return d
	}
	out := Directory{Locations: []Location{}}
	for _, l := range d.Locations {
		if l.Type != kind {
			continue
		}
		out.Locations = append(out.Locations, l)
		if kind == ATM {
			out.ATMs++
		} else {
			out.Branches++
		}
	}
	return out
}

// Nearby returns the directory ordered by distance from (lat, lng).
func (s *Service) Nearby(ctx context.Context, lat, lng float64) (Directory, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return Directory{}, err
	}
	for i := range d.Locations {
		d.Locations[i].Distance = math.Round(haversine(lat, lng, d.Locations[i].Coordinates.Lat, d.Locations[i].Coordinates.Lng))
	}
	sort.SliceStable(d.Locations, func(i, j int) bool { return d.Locations[i].Distance < d.Locations[j].Distance })
	return d, nil
}

func (s *Service) ByID(ctx context.Context, id string) (Location, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return Location{}, err
	}
	for _, l := range d.Locations {
		if l.ID == id {
			return l, nil
		}
	}
	return Location{}, fmt.Errorf("location %q: %w", id, page.ErrNotFound)
}

func (s *Service) location(r normalize.Record) Location {
	rd := s.norm.Reader("locations", r)
	l := Location{
		ID:       rd.String(fID),
		Type:     Branch,
		Name:     rd.String(fName),
		Address:  rd.String(fAddress),
		Phone:    rd.String(fPhone),
		Services: rd.Strings(fServices),
	}
	if rd.String(fType) == string(ATM) {
		l.Type = ATM
	}
	if rd.Has(fHours) {
		h := rd.Nested(fHours)
		l.Hours = &Hours{OpeningTime: h.String(fOpening), ClosingTime: h.String(fClosing)}
	}
	c := rd.Nested(fCoordinates)
	l.Coordinates = Coordinates{Lat: c.Float(fLat), Lng: c.Float(fLng)}
	return l
}

const earthRadius = 6371000.0

// haversine is the great-circle distance in meters.
func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Sqrt(a))
}
