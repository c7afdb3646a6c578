package tourguide

import (
	"encoding/json"
	"testing"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"home", Home},
		{"HOME", Home},
		{" Church ", Church},
		{"cafe", Cafe},
	}
	for _, tt := range tests {
		got, err := ParseLocation(tt.in)
		if err != nil {
			t.Errorf("ParseLocation(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLocation(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLocation("cathedral"); err == nil {
		t.Error("expected error for unknown location")
	}
}

func TestLocation_ZeroValueIsHome(t *testing.T) {
	var l Location
	if l != Home {
		t.Errorf("zero Location = %s, want HOME", l)
	}
}

func TestLocation_Invalid(t *testing.T) {
	l := Location(42)
	if l.Valid() {
		t.Error("Location(42) should not be valid")
	}
	if l.String() != "Location(42)" {
		t.Errorf("String() = %q", l.String())
	}
	if _, err := json.Marshal(l); err == nil {
		t.Error("expected error encoding an invalid location")
	}
}

func TestLocations(t *testing.T) {
	locs := Locations()
	if len(locs) != 8 {
		t.Fatalf("len(Locations()) = %d, want 8", len(locs))
	}
	if locs[0] != Home || locs[7] != Church {
		t.Errorf("Locations() = %v", locs)
	}
}

func TestRequest_JSON(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{NewRequest(ReqList), `"List"`},
		{NewRequest(ReqCurrent), `"Current"`},
		{NewRequest(ReqNext), `"Next"`},
		{PutRequest(Field), `{"Put":"FIELD"}`},
		{DelRequest(Shop), `{"Del":"SHOP"}`},
		{MovRequest(Beach, 0), `{"Mov":["BEACH",0]}`},
	}

	for _, tt := range tests {
		b, err := json.Marshal(tt.req)
		if err != nil {
			t.Fatalf("Marshal(%s) failed: %v", tt.req, err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal(%s) = %s, want %s", tt.req, b, tt.want)
		}

		var got Request
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", b, err)
		}
		if got != tt.req {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", b, got, tt.req)
		}
	}
}

func TestRequest_UnitVariantWithNull(t *testing.T) {
	var r Request
	if err := json.Unmarshal([]byte(`{"Next":null}`), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if r.Kind != ReqNext {
		t.Errorf("Kind = %s, want Next", r.Kind)
	}
}

func TestRequest_InvalidKind(t *testing.T) {
	if _, err := json.Marshal(Request{}); err == nil {
		t.Error("expected error encoding a request without kind")
	}
}

func TestResponse_JSON(t *testing.T) {
	tests := []struct {
		resp Response
		want string
	}{
		{SuccessResponse(), `"Success"`},
		{DoneResponse(), `"Done"`},
		{FailureResponse(LocationNotOnItinerary), `{"Failure":"LocationNotOnItinerary"}`},
		{WhereResponse(Woods), `{"Where":"WOODS"}`},
		{ListResponse([]Location{Home, City}), `{"List":["HOME","CITY"]}`},
		{ListResponse(nil), `{"List":[]}`},
		{Response{Kind: RespList}, `{"List":[]}`},
	}

	for _, tt := range tests {
		b, err := json.Marshal(tt.resp)
		if err != nil {
			t.Fatalf("Marshal(%s) failed: %v", tt.resp, err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal(%s) = %s, want %s", tt.resp, b, tt.want)
		}
	}
}

func TestListResponse_Copies(t *testing.T) {
	stops := []Location{Home, City}
	resp := ListResponse(stops)
	stops[0] = Shop

	if resp.Locations[0] != Home {
		t.Errorf("ListResponse shares its input: %v", resp.Locations)
	}
}

func TestPayload_String(t *testing.T) {
	tests := []struct {
		p    Payload
		want string
	}{
		{NewRequestMessage(MovRequest(Cafe, 1)).Data, "Request(Mov(CAFE, 1))"},
		{NewResponseMessage(ListResponse([]Location{Home, Woods})).Data, "Response(List([HOME, WOODS]))"},
		{NewResponseMessage(FailureResponse(InvalidRequest)).Data, "Response(Failure(InvalidRequest))"},
		{Payload{}, "Payload(empty)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPayload_BothSet(t *testing.T) {
	req := NewRequest(ReqList)
	resp := DoneResponse()
	if _, err := json.Marshal(Payload{Request: &req, Response: &resp}); err == nil {
		t.Error("expected error encoding a payload with both variants")
	}
}
