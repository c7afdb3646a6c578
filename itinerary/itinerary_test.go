package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zereker/tourguide"
)

func TestNewState_CopiesStops(t *testing.T) {
	stops := []tourguide.Location{tourguide.Home, tourguide.Cafe}
	s := NewState(stops...)
	stops[0] = tourguide.Woods

	assert.Equal(t, tourguide.Home, Snapshot(s).Stops[0])
}

func TestSnapshot_DeepCopy(t *testing.T) {
	s := NewState(tourguide.Home, tourguide.Cafe)
	it := Snapshot(s)
	it.Stops[0] = tourguide.Woods
	it.Cursor = 1

	again := Snapshot(s)
	assert.Equal(t, tourguide.Home, again.Stops[0])
	assert.Equal(t, 0, again.Cursor)
}

func TestDefaultRoute(t *testing.T) {
	assert.Equal(t, tourguide.Locations(), DefaultRoute())
}

func TestItinerary_Advance(t *testing.T) {
	it := Itinerary{Stops: []tourguide.Location{tourguide.Home, tourguide.Cafe}}

	l, ok := it.Advance()
	require.True(t, ok)
	assert.Equal(t, tourguide.Cafe, l)

	_, ok = it.Advance()
	assert.False(t, ok)
	assert.Equal(t, 1, it.Cursor)
}

func TestItinerary_DelDuplicates(t *testing.T) {
	it := Itinerary{Stops: []tourguide.Location{tourguide.Cafe, tourguide.Home, tourguide.Cafe}}

	require.True(t, it.Del(tourguide.Cafe))
	assert.Equal(t, []tourguide.Location{tourguide.Home, tourguide.Cafe}, it.Stops)
}

func TestItinerary_DelAfterCursor(t *testing.T) {
	it := Itinerary{Cursor: 1, Stops: []tourguide.Location{tourguide.Home, tourguide.Cafe, tourguide.Woods}}

	require.True(t, it.Del(tourguide.Woods))
	assert.Equal(t, 1, it.Cursor)
	l, ok := it.Current()
	require.True(t, ok)
	assert.Equal(t, tourguide.Cafe, l)
}

func TestItinerary_DelCurrentAtEnd(t *testing.T) {
	it := Itinerary{Cursor: 1, Stops: []tourguide.Location{tourguide.Home, tourguide.Cafe}}

	require.True(t, it.Del(tourguide.Cafe))
	_, ok := it.Current()
	assert.False(t, ok)
}

func TestItinerary_Mov(t *testing.T) {
	tests := []struct {
		name     string
		loc      tourguide.Location
		position int
		want     []tourguide.Location
		err      error
	}{
		{
			name:     "forward",
			loc:      tourguide.Home,
			position: 2,
			want:     []tourguide.Location{tourguide.Cafe, tourguide.Woods, tourguide.Home},
		},
		{
			name:     "backward",
			loc:      tourguide.Woods,
			position: 0,
			want:     []tourguide.Location{tourguide.Woods, tourguide.Home, tourguide.Cafe},
		},
		{
			name:     "same place",
			loc:      tourguide.Cafe,
			position: 1,
			want:     []tourguide.Location{tourguide.Home, tourguide.Cafe, tourguide.Woods},
		},
		{
			name:     "missing",
			loc:      tourguide.Church,
			position: 0,
			want:     []tourguide.Location{tourguide.Home, tourguide.Cafe, tourguide.Woods},
			err:      errNotOnItinerary,
		},
		{
			name:     "out of range",
			loc:      tourguide.Home,
			position: 3,
			want:     []tourguide.Location{tourguide.Home, tourguide.Cafe, tourguide.Woods},
			err:      errBadPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Itinerary{Stops: []tourguide.Location{tourguide.Home, tourguide.Cafe, tourguide.Woods}}
			err := it.Mov(tt.loc, tt.position)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, it.Stops)
		})
	}
}
