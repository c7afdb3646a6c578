package itinerary

import (
	"github.com/pkg/errors"

	"github.com/Zereker/tourguide"
)

var (
	errNotOnItinerary = errors.New("location not on itinerary")
	errBadPosition    = errors.New("position out of range")
)

// Guide answers traveller requests against a shared State.
//
// List, Current and Next are always served. Put, Del and Mov are part of the
// vocabulary but only change the itinerary when Editable is set; otherwise
// they are refused with InvalidRequest like any other unhandled request.
type Guide struct {
	Editable bool
}

var _ tourguide.Decider[*State] = Guide{}

// Decide implements tourguide.Decider. The state lock is held only while
// the reply is computed.
func (g Guide) Decide(msg tourguide.Message, state *State) tourguide.Message {
	req := msg.Data.Request
	if req == nil {
		return fail(tourguide.InvalidRequest)
	}

	resp := tourguide.Apply(state, func(it *Itinerary) tourguide.Response {
		return g.answer(*req, it)
	})
	return tourguide.NewResponseMessage(resp)
}

func (g Guide) answer(req tourguide.Request, it *Itinerary) tourguide.Response {
	switch req.Kind {
	case tourguide.ReqList:
		return tourguide.ListResponse(it.Stops)

	case tourguide.ReqCurrent:
		if l, ok := it.Current(); ok {
			return tourguide.WhereResponse(l)
		}
		return tourguide.FailureResponse(tourguide.LocationNotOnItinerary)

	case tourguide.ReqNext:
		if l, ok := it.Advance(); ok {
			return tourguide.WhereResponse(l)
		}
		return tourguide.DoneResponse()
	}

	if !g.Editable {
		return tourguide.FailureResponse(tourguide.InvalidRequest)
	}

	switch req.Kind {
	case tourguide.ReqPut:
		it.Put(req.Location)
		return tourguide.SuccessResponse()

	case tourguide.ReqDel:
		if !it.Del(req.Location) {
			return tourguide.FailureResponse(tourguide.LocationNotOnItinerary)
		}
		return tourguide.SuccessResponse()

	case tourguide.ReqMov:
		err := it.Mov(req.Location, int(req.Position))
		switch {
		case errors.Is(err, errNotOnItinerary):
			return tourguide.FailureResponse(tourguide.LocationNotOnItinerary)
		case err != nil:
			return tourguide.FailureResponse(tourguide.InvalidRequest)
		}
		return tourguide.SuccessResponse()
	}

	return tourguide.FailureResponse(tourguide.InvalidRequest)
}

func fail(reason tourguide.Failure) tourguide.Message {
	return tourguide.NewResponseMessage(tourguide.FailureResponse(reason))
}
