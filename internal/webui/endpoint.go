package webui

import "net/http"

// Arity says whether an endpoint answers with one object or a JSON array.
type Arity int

const (
	Single Arity = iota
	List
)

// Endpoint describes one server route.
type Endpoint struct {
	Name    string
	Path    string
	Method  string
	Headers Headers
	Arity   Arity
	HasBody bool
}

func (e Endpoint) URL(base string) string {
	return base + e.Path
}

var (
	AppIDEndpoint = Endpoint{
		Name: "app-id", Path: "/app_id", Method: http.MethodGet, Headers: JSONHeaders, Arity: Single,
	}
	CmdFlagsEndpoint = Endpoint{
		Name: "cmd-flags", Path: "/sdapi/v1/cmd-flags", Method: http.MethodGet, Headers: JSONHeaders, Arity: Single,
	}
	SDModelsEndpoint = Endpoint{
		Name: "sd-models", Path: "/sdapi/v1/sd-models", Method: http.MethodGet, Headers: JSONHeaders, Arity: List,
	}
	ProgressEndpoint = Endpoint{
		Name: "progress", Path: "/sdapi/v1/progress", Method: http.MethodGet, Headers: JSONHeaders, Arity: Single,
	}
	OptionsEndpoint = Endpoint{
		Name: "options", Path: "/sdapi/v1/options", Method: http.MethodPost, Headers: JSONHeaders, Arity: Single, HasBody: true,
	}
	Txt2ImgEndpoint = Endpoint{
		Name: "txt2img", Path: "/sdapi/v1/txt2img", Method: http.MethodPost, Headers: JSONHeaders, Arity: Single, HasBody: true,
	}
	Img2ImgEndpoint = Endpoint{
		Name: "img2img", Path: "/sdapi/v1/img2img", Method: http.MethodPost, Headers: JSONHeaders, Arity: Single, HasBody: true,
	}
	PNGInfoEndpoint = Endpoint{
		Name: "png-info", Path: "/sdapi/v1/png-info", Method: http.MethodPost, Headers: JSONHeaders, Arity: Single, HasBody: true,
	}
	ControlNetTxt2ImgEndpoint = Endpoint{
		Name: "controlnet-txt2img", Path: "/controlnet/txt2img", Method: http.MethodPost, Headers: JSONHeaders, Arity: Single, HasBody: true,
	}
)

var Endpoints = []Endpoint{
	AppIDEndpoint,
	CmdFlagsEndpoint,
	SDModelsEndpoint,
	ProgressEndpoint,
	OptionsEndpoint,
	Txt2ImgEndpoint,
	Img2ImgEndpoint,
	PNGInfoEndpoint,
	ControlNetTxt2ImgEndpoint,
}
