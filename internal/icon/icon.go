// Package icon maps the icon names stored in the content backend onto a
// closed set of tags the rendering tier knows how to draw.
package icon

import (
	"encoding/json"
	"strings"
)

type Tag uint8

const (
	// Star is the fallback for any name that is not in the set.
	Star Tag = iota
	MoneyBillWave
	CreditCard
	ChartLine
	MobileAlt
	Home
	Car
	GraduationCap
	Building
	ShieldAlt
	Gift
	Heart
	Users
	Handshake
	Lightbulb
	Rocket
	Gem
	Crown
	Trophy
	Medal
	UserShield
	PeopleArrows
	HandHoldingHeart
	Tree
	Palette
	Futbol

	numTags
)

// Fallback is the tag returned for unknown names.
const Fallback = Star

var components = [numTags]string{
	Star:             "FaStar",
	MoneyBillWave:    "FaMoneyBillWave",
	CreditCard:       "FaCreditCard",
	ChartLine:        "FaChartLine",
	MobileAlt:        "FaMobileAlt",
	Home:             "FaHome",
	Car:              "FaCar",
	GraduationCap:    "FaGraduationCap",
	Building:         "FaBuilding",
	ShieldAlt:        "FaShieldAlt",
	Gift:             "FaGift",
	Heart:            "FaHeart",
	Users:            "FaUsers",
	Handshake:        "FaHandshake",
	Lightbulb:        "FaLightbulb",
	Rocket:           "FaRocket",
	Gem:              "FaGem",
	Crown:            "FaCrown",
	Trophy:           "FaTrophy",
	Medal:            "FaMedal",
	UserShield:       "FaUserShield",
	PeopleArrows:     "FaPeopleArrows",
	HandHoldingHeart: "FaHandHoldingHeart",
	Tree:             "FaTree",
	Palette:          "FaPalette",
	Futbol:           "FaFutbol",
}

var byName = func() map[string]Tag {
	m := make(map[string]Tag, numTags)
	for t, name := range components {
		m[strings.ToLower(name)] = Tag(t)
	}
	return m
}()

// Component returns the component name for t. Out-of-range tags map to the
// fallback component.
func (t Tag) Component() string {
	if t >= numTags {
		return components[Fallback]
	}
	return components[t]
}

func (t Tag) String() string { return t.Component() }

func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Component())
}

func (t *Tag) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	*t = Resolve(name)
	return nil
}

func (t Tag) MarshalYAML() (any, error) { return t.Component(), nil }

func (t *Tag) UnmarshalText(b []byte) error {
	*t = Resolve(string(b))
	return nil
}

// Parse looks name up case-insensitively. The "Fa" prefix is optional.
func Parse(name string) (Tag, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Fallback, false
	}
	if t, ok := byName[key]; ok {
		return t, true
	}
	if t, ok := byName["fa"+key]; ok {
		return t, true
	}
	return Fallback, false
}

// Resolve never fails: unknown or empty names map to Fallback.
func Resolve(name string) Tag {
	t, _ := Parse(name)
	return t
}

// ResolveOr is Resolve with a caller-chosen fallback.
func ResolveOr(name string, fallback Tag) Tag {
	if t, ok := Parse(name); ok {
		return t
	}
	return fallback
}

// All returns every tag in declaration order.
func All() []Tag {
	out := make([]Tag, numTags)
	for i := range out {
		out[i] = Tag(i)
	}
	return out
}
