package tourguide

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Location is one of the places the tour-guide knows about.
// The zero value is Home.
type Location uint8

const (
	Home Location = iota
	City
	Woods
	Beach
	Field
	Cafe
	Shop
	Church
)

var locationNames = [...]string{
	Home:   "HOME",
	City:   "CITY",
	Woods:  "WOODS",
	Beach:  "BEACH",
	Field:  "FIELD",
	Cafe:   "CAFE",
	Shop:   "SHOP",
	Church: "CHURCH",
}

// Locations returns every known location in declaration order.
func Locations() []Location {
	out := make([]Location, len(locationNames))
	for i := range locationNames {
		out[i] = Location(i)
	}
	return out
}

func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return "Location(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is one of the declared locations.
func (l Location) Valid() bool {
	return int(l) < len(locationNames)
}

// ParseLocation converts a location name, in any case, to a Location.
func ParseLocation(s string) (Location, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range locationNames {
		if n == name {
			return Location(i), nil
		}
	}
	return Home, errors.Errorf("unknown location %q", s)
}

func (l Location) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.Errorf("invalid location %d", uint8(l))
	}
	return []byte(locationNames[l]), nil
}

// UnmarshalText only accepts the exact upper-case wire names.
func (l *Location) UnmarshalText(text []byte) error {
	for i, n := range locationNames {
		if n == string(text) {
			*l = Location(i)
			return nil
		}
	}
	return errors.Errorf("unknown location %q", text)
}
