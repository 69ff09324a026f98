// Package locations loads the branch and ATM directory and works out which
// locations are open.
package locations

type Kind string

const (
	Branch Kind = "branch"
	ATM    Kind = "atm"
)

type Directory struct {
	Locations []Location `json:"locations"`
	Branches  int        `json:"branches"`
	ATMs      int        `json:"atms"`
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Hours are the weekday opening hours as the backend writes them, e.g.
// "8:30 AM" and "5 PM".
type Hours struct {
	OpeningTime string `json:"openingTime" yaml:"openingTime"`
	ClosingTime string `json:"closingTime" yaml:"closingTime"`
}

type Location struct {
	ID           string      `json:"id" yaml:"id"`
	Type         Kind        `json:"type" yaml:"type"`
	Name         string      `json:"name" yaml:"name"`
	Address      string      `json:"address" yaml:"address"`
	Phone        string      `json:"phone,omitempty" yaml:"phone,omitempty"`
	Hours        *Hours      `json:"hours,omitempty" yaml:"hours,omitempty"`
	Coordinates  Coordinates `json:"coordinates" yaml:"coordinates"`
	Services     []string    `json:"services" yaml:"services"`
	IsOpen       bool        `json:"isOpen" yaml:"-"`
	ScheduleText string      `json:"scheduleText" yaml:"-"`
	Availability string      `json:"availability,omitempty" yaml:"-"`
	// Distance in meters from the point passed to Nearby.
	Distance float64 `json:"distance,omitempty" yaml:"-"`
}
