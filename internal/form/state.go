// Package form holds the editable request form and the transitions that
// user input applies to it. Nothing here performs I/O.
package form

import "strings"

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the verbs in the order the method selector shows them.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseMethod upper-cases raw and reports whether it is one of Methods.
func ParseMethod(raw string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// Next returns the verb after m, wrapping around. step may be negative.
func (m Method) Next(step int) Method {
	idx := 0
	for i, known := range Methods {
		if known == m {
			idx = i
			break
		}
	}
	n := len(Methods)
	idx = ((idx+step)%n + n) % n
	return Methods[idx]
}

type Field string

const (
	FieldEndpoint Field = "endpoint"
	FieldBody     Field = "body"
	FieldMethod   Field = "method"
)

type HeaderField string

const (
	HeaderKey   HeaderField = "key"
	HeaderValue HeaderField = "value"
)

type HeaderEntry struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type State struct {
	Headers  []HeaderEntry
	Endpoint string
	Method   Method
	Body     string
	Output   string
}

// DefaultHeaders returns a fresh copy of the rows a new form starts with.
func DefaultHeaders() []HeaderEntry {
	return []HeaderEntry{
		{Key: "Accept", Value: "application/json"},
		{Key: "Content-Type", Value: "application/json"},
	}
}

// NewState returns an empty GET form with the default headers.
func NewState() State {
	return State{
		Headers: DefaultHeaders(),
		Method:  MethodGet,
	}
}

func (s State) Clone() State {
	out := s
	if s.Headers != nil {
		out.Headers = append([]HeaderEntry(nil), s.Headers...)
	}
	return out
}

// UpdateField reports whether the value was applied. Endpoint and body
// accept anything; unknown methods are ignored.
func (s *State) UpdateField(field Field, value string) bool {
	switch field {
	case FieldEndpoint:
		s.Endpoint = value
	case FieldBody:
		s.Body = value
	case FieldMethod:
		m, ok := ParseMethod(value)
		if !ok {
			return false
		}
		s.Method = m
	default:
		return false
	}
	return true
}

func (s *State) AddHeader() {
	s.Headers = append(s.Headers, HeaderEntry{})
}

// RemoveHeader ignores indexes that no longer exist, which happens when a
// row index was captured before the list changed.
func (s *State) RemoveHeader(index int) bool {
	if index < 0 || index >= len(s.Headers) {
		return false
	}
	s.Headers = append(s.Headers[:index:index], s.Headers[index+1:]...)
	return true
}

func (s *State) UpdateHeader(index int, field HeaderField, value string) bool {
	if index < 0 || index >= len(s.Headers) {
		return false
	}
	switch field {
	case HeaderKey:
		s.Headers[index].Key = value
	case HeaderValue:
		s.Headers[index].Value = value
	default:
		return false
	}
	return true
}

// HeaderMap flattens the list; a later entry with the same key wins.
func (s State) HeaderMap() map[string]string {
	out := make(map[string]string, len(s.Headers))
	for _, h := range s.Headers {
		out[h.Key] = h.Value
	}
	return out
}

// SetCall replaces the request fields with call. Fields the call leaves
// empty fall back to their blank defaults; nothing is merged.
func (s *State) SetCall(call Call) {
	method, ok := ParseMethod(call.Method)
	if !ok {
		method = MethodGet
	}
	s.Method = method
	s.Endpoint = call.Endpoint
	s.Body = call.Body
	s.Headers = append([]HeaderEntry{}, call.Headers...)
}
