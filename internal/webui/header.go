package webui

import "net/http"

// Header is a single request header.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered, read-only set of request headers shared by every
// request to an endpoint family.
type Headers struct {
	list []Header
}

// NewHeaders copies headers, so later changes to the argument are not seen.
func NewHeaders(headers ...Header) Headers {
	list := make([]Header, len(headers))
	copy(list, headers)
	return Headers{list}
}

// JSONHeaders is attached to every endpoint the server exposes.
var JSONHeaders = NewHeaders(Header{Name: "Content-Type", Value: "application/json"})

func (h Headers) Len() int {
	return len(h.list)
}

func (h Headers) At(i int) Header {
	return h.list[i]
}

// All returns a copy of the headers in insertion order.
func (h Headers) All() []Header {
	list := make([]Header, len(h.list))
	copy(list, h.list)
	return list
}

func (h Headers) apply(header http.Header) {
	for _, v := range h.list {
		header.Set(v.Name, v.Value)
	}
}
