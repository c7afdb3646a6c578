// Package itinerary is the tour-guide application: a shared, ordered list of
// locations with a cursor marking where the travellers are, and the Guide
// that answers their requests about it.
package itinerary

import (
	"github.com/Zereker/tourguide"
)

// Itinerary is an ordered list of stops and the index of the current one.
// Cursor and Stops always change together, under one lock.
type Itinerary struct {
	Cursor int
	Stops  []tourguide.Location
}

// State is the shared itinerary handed to every exchange.
type State = tourguide.Guarded[Itinerary]

// NewState returns a State positioned on the first of stops.
func NewState(stops ...tourguide.Location) *State {
	s := make([]tourguide.Location, len(stops))
	copy(s, stops)
	return tourguide.NewGuarded(Itinerary{Stops: s})
}

// DefaultRoute is the itinerary used when none is configured.
func DefaultRoute() []tourguide.Location {
	return tourguide.Locations()
}

// Snapshot returns a deep copy of the itinerary held by s.
func Snapshot(s *State) Itinerary {
	return tourguide.Apply(s, func(it *Itinerary) Itinerary {
		return it.clone()
	})
}

func (it *Itinerary) clone() Itinerary {
	stops := make([]tourguide.Location, len(it.Stops))
	copy(stops, it.Stops)
	return Itinerary{Cursor: it.Cursor, Stops: stops}
}

// Current returns the stop under the cursor.
func (it *Itinerary) Current() (tourguide.Location, bool) {
	if it.Cursor < 0 || it.Cursor >= len(it.Stops) {
		return tourguide.Home, false
	}
	return it.Stops[it.Cursor], true
}

// Advance moves the cursor to the next stop. At the last stop it reports
// false and leaves the cursor where it is.
func (it *Itinerary) Advance() (tourguide.Location, bool) {
	next := it.Cursor + 1
	if next < 0 || next >= len(it.Stops) {
		return tourguide.Home, false
	}
	it.Cursor = next
	return it.Stops[next], true
}

// Put appends l.
func (it *Itinerary) Put(l tourguide.Location) {
	it.Stops = append(it.Stops, l)
}

// Del removes the first occurrence of l. The cursor keeps pointing at the
// same stop when an earlier one is removed.
func (it *Itinerary) Del(l tourguide.Location) bool {
	i := it.index(l)
	if i < 0 {
		return false
	}
	it.Stops = append(it.Stops[:i], it.Stops[i+1:]...)
	if i < it.Cursor {
		it.Cursor--
	}
	return true
}

// Mov moves the first occurrence of l to position. The cursor index is left
// unchanged.
func (it *Itinerary) Mov(l tourguide.Location, position int) error {
	i := it.index(l)
	if i < 0 {
		return errNotOnItinerary
	}
	if position < 0 || position >= len(it.Stops) {
		return errBadPosition
	}
	if i == position {
		return nil
	}

	stop := it.Stops[i]
	if i < position {
		copy(it.Stops[i:position], it.Stops[i+1:position+1])
	} else {
		copy(it.Stops[position+1:i+1], it.Stops[position:i])
	}
	it.Stops[position] = stop
	return nil
}

func (it *Itinerary) index(l tourguide.Location) int {
	for i, s := range it.Stops {
		if s == l {
			return i
		}
	}
	return -1
}
