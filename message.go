package tourguide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Header is reserved for future metadata. It is never populated and is
// always encoded as null.
type Header struct{}

// Message is the unit carried by one frame.
type Message struct {
	Header *Header `json:"header"`
	Data   Payload `json:"data"`
}

// NewRequestMessage wraps r in a Message.
func NewRequestMessage(r Request) Message {
	return Message{Data: Payload{Request: &r}}
}

// NewResponseMessage wraps r in a Message.
func NewResponseMessage(r Response) Message {
	return Message{Data: Payload{Response: &r}}
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Header json.RawMessage `json:"header"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Header) > 0 && !bytes.Equal(raw.Header, []byte("null")) {
		return errors.New("message header is reserved and must be null")
	}
	if len(raw.Data) == 0 {
		return errors.New("message has no data")
	}
	var p Payload
	if err := json.Unmarshal(raw.Data, &p); err != nil {
		return err
	}
	*m = Message{Data: p}
	return nil
}

// Payload holds exactly one of Request or Response.
type Payload struct {
	Request  *Request
	Response *Response
}

func (p Payload) String() string {
	switch {
	case p.Request != nil:
		return "Request(" + p.Request.String() + ")"
	case p.Response != nil:
		return "Response(" + p.Response.String() + ")"
	}
	return "Payload(empty)"
}

func (p Payload) MarshalJSON() ([]byte, error) {
	switch {
	case p.Request != nil && p.Response == nil:
		return json.Marshal(map[string]*Request{"Request": p.Request})
	case p.Response != nil && p.Request == nil:
		return json.Marshal(map[string]*Response{"Response": p.Response})
	}
	return nil, errors.New("payload must carry exactly one of request or response")
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	tag, body, err := splitTagged(data)
	if err != nil {
		return err
	}
	if body == nil {
		return errors.Errorf("payload %q has no body", tag)
	}
	switch tag {
	case "Request":
		var r Request
		if err := json.Unmarshal(body, &r); err != nil {
			return err
		}
		*p = Payload{Request: &r}
	case "Response":
		var r Response
		if err := json.Unmarshal(body, &r); err != nil {
			return err
		}
		*p = Payload{Response: &r}
	default:
		return errors.Errorf("unknown payload %q", tag)
	}
	return nil
}

// RequestKind names a Request variant.
type RequestKind uint8

const (
	ReqList RequestKind = iota + 1
	ReqPut
	ReqDel
	ReqMov
	ReqCurrent
	ReqNext
)

var requestKindNames = map[RequestKind]string{
	ReqList:    "List",
	ReqPut:     "Put",
	ReqDel:     "Del",
	ReqMov:     "Mov",
	ReqCurrent: "Current",
	ReqNext:    "Next",
}

func (k RequestKind) String() string {
	if n, ok := requestKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("RequestKind(%d)", uint8(k))
}

// Request is what a traveller asks a tour-guide. Location is meaningful for
// Put, Del and Mov; Position only for Mov.
type Request struct {
	Kind     RequestKind
	Location Location
	Position uint32
}

// NewRequest returns a request without arguments: List, Current or Next.
func NewRequest(kind RequestKind) Request {
	return Request{Kind: kind}
}

func PutRequest(l Location) Request {
	return Request{Kind: ReqPut, Location: l}
}

func DelRequest(l Location) Request {
	return Request{Kind: ReqDel, Location: l}
}

func MovRequest(l Location, position uint32) Request {
	return Request{Kind: ReqMov, Location: l, Position: position}
}

func (r Request) String() string {
	switch r.Kind {
	case ReqPut, ReqDel:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Location)
	case ReqMov:
		return fmt.Sprintf("%s(%s, %d)", r.Kind, r.Location, r.Position)
	}
	return r.Kind.String()
}

func (r Request) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ReqList, ReqCurrent, ReqNext:
		return json.Marshal(r.Kind.String())
	case ReqPut, ReqDel:
		return json.Marshal(map[string]Location{r.Kind.String(): r.Location})
	case ReqMov:
		return json.Marshal(map[string][]any{r.Kind.String(): {r.Location, r.Position}})
	}
	return nil, errors.Errorf("cannot encode request kind %d", uint8(r.Kind))
}

func (r *Request) UnmarshalJSON(data []byte) error {
	tag, body, err := splitTagged(data)
	if err != nil {
		return err
	}
	kind, ok := lookupKind(requestKindNames, tag)
	if !ok {
		return errors.Errorf("unknown request %q", tag)
	}

	switch kind {
	case ReqList, ReqCurrent, ReqNext:
		if body != nil {
			return errors.Errorf("request %q takes no arguments", tag)
		}
		*r = Request{Kind: kind}
	case ReqPut, ReqDel:
		var l Location
		if err := decodeBody(tag, body, &l); err != nil {
			return err
		}
		*r = Request{Kind: kind, Location: l}
	case ReqMov:
		var args []json.RawMessage
		if err := decodeBody(tag, body, &args); err != nil {
			return err
		}
		if len(args) != 2 {
			return errors.Errorf("request %q takes 2 arguments, got %d", tag, len(args))
		}
		var l Location
		var pos uint32
		if err := decodeBody(tag, args[0], &l); err != nil {
			return err
		}
		if err := decodeBody(tag, args[1], &pos); err != nil {
			return err
		}
		*r = Request{Kind: kind, Location: l, Position: pos}
	}
	return nil
}

// ResponseKind names a Response variant.
type ResponseKind uint8

const (
	RespSuccess ResponseKind = iota + 1
	RespFailure
	RespList
	RespWhere
	RespDone
)

var responseKindNames = map[ResponseKind]string{
	RespSuccess: "Success",
	RespFailure: "Failure",
	RespList:    "List",
	RespWhere:   "Where",
	RespDone:    "Done",
}

func (k ResponseKind) String() string {
	if n, ok := responseKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ResponseKind(%d)", uint8(k))
}

// Response is what a tour-guide answers. Reason is set for Failure,
// Locations for List and Location for Where.
type Response struct {
	Kind      ResponseKind
	Reason    Failure
	Locations []Location
	Location  Location
}

func SuccessResponse() Response {
	return Response{Kind: RespSuccess}
}

func FailureResponse(reason Failure) Response {
	return Response{Kind: RespFailure, Reason: reason}
}

// ListResponse copies locs; a nil slice becomes an empty list.
func ListResponse(locs []Location) Response {
	out := make([]Location, len(locs))
	copy(out, locs)
	return Response{Kind: RespList, Locations: out}
}

func WhereResponse(l Location) Response {
	return Response{Kind: RespWhere, Location: l}
}

func DoneResponse() Response {
	return Response{Kind: RespDone}
}

func (r Response) String() string {
	switch r.Kind {
	case RespFailure:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Reason)
	case RespWhere:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Location)
	case RespList:
		names := make([]string, len(r.Locations))
		for i, l := range r.Locations {
			names[i] = l.String()
		}
		return fmt.Sprintf("%s([%s])", r.Kind, strings.Join(names, ", "))
	}
	return r.Kind.String()
}

func (r Response) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RespSuccess, RespDone:
		return json.Marshal(r.Kind.String())
	case RespFailure:
		return json.Marshal(map[string]Failure{r.Kind.String(): r.Reason})
	case RespWhere:
		return json.Marshal(map[string]Location{r.Kind.String(): r.Location})
	case RespList:
		locs := r.Locations
		if locs == nil {
			locs = []Location{}
		}
		return json.Marshal(map[string][]Location{r.Kind.String(): locs})
	}
	return nil, errors.Errorf("cannot encode response kind %d", uint8(r.Kind))
}

func (r *Response) UnmarshalJSON(data []byte) error {
	tag, body, err := splitTagged(data)
	if err != nil {
		return err
	}
	kind, ok := lookupKind(responseKindNames, tag)
	if !ok {
		return errors.Errorf("unknown response %q", tag)
	}

	switch kind {
	case RespSuccess, RespDone:
		if body != nil {
			return errors.Errorf("response %q takes no arguments", tag)
		}
		*r = Response{Kind: kind}
	case RespFailure:
		var f Failure
		if err := decodeBody(tag, body, &f); err != nil {
			return err
		}
		*r = Response{Kind: kind, Reason: f}
	case RespWhere:
		var l Location
		if err := decodeBody(tag, body, &l); err != nil {
			return err
		}
		*r = Response{Kind: kind, Location: l}
	case RespList:
		var items []json.RawMessage
		if err := decodeBody(tag, body, &items); err != nil {
			return err
		}
		locs := make([]Location, len(items))
		for i, item := range items {
			if err := decodeBody(tag, item, &locs[i]); err != nil {
				return err
			}
		}
		*r = Response{Kind: kind, Locations: locs}
	}
	return nil
}

// Failure is the closed set of reasons a tour-guide can refuse a request.
type Failure uint8

const (
	InvalidRequest Failure = iota
	InvalidResponse
	LocationNotOnItinerary
)

var failureNames = [...]string{
	InvalidRequest:         "InvalidRequest",
	InvalidResponse:        "InvalidResponse",
	LocationNotOnItinerary: "LocationNotOnItinerary",
}

func (f Failure) String() string {
	if int(f) < len(failureNames) {
		return failureNames[f]
	}
	return fmt.Sprintf("Failure(%d)", uint8(f))
}

func (f Failure) MarshalText() ([]byte, error) {
	if int(f) >= len(failureNames) {
		return nil, errors.Errorf("invalid failure %d", uint8(f))
	}
	return []byte(failureNames[f]), nil
}

func (f *Failure) UnmarshalText(text []byte) error {
	for i, n := range failureNames {
		if n == string(text) {
			*f = Failure(i)
			return nil
		}
	}
	return errors.Errorf("unknown failure %q", text)
}

// splitTagged reads an externally tagged variant: either a bare string for
// variants without data, or an object with a single key. body is nil for the
// bare string form and for a null value.
func splitTagged(data []byte) (tag string, body json.RawMessage, err error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &tag); err != nil {
			return "", nil, err
		}
		return tag, nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, errors.Errorf("expected exactly one variant, got %d", len(obj))
	}
	for k, v := range obj {
		tag, body = k, v
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		body = nil
	}
	return tag, body, nil
}

// decodeBody unmarshals one variant argument into v. A missing argument and
// a JSON null are both rejected.
func decodeBody(tag string, body json.RawMessage, v any) error {
	if body == nil || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return errors.Errorf("variant %q requires an argument", tag)
	}
	return json.Unmarshal(body, v)
}

func lookupKind[K comparable](names map[K]string, tag string) (K, bool) {
	for k, n := range names {
		if n == tag {
			return k, true
		}
	}
	var zero K
	return zero, false
}
