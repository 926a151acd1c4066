package webui

import (
	"context"
	"encoding/json"
)

type OptionsRequest struct {
	SDModelCheckpoint string `json:"sd_model_checkpoint"`
}

type OptionsResponse struct{}

// SetOptions changes server configuration, typically the loaded checkpoint.
// Callers that generate afterwards must wait for it to return first.
func (c *Client) SetOptions(ctx context.Context, body OptionsRequest) (OptionsResponse, error) {
	return call[OptionsResponse](ctx, c, OptionsEndpoint, body)
}

// GenerationResponse is the reply shared by every image-producing route.
type GenerationResponse struct {
	Images     []string        `json:"images"`
	Parameters json.RawMessage `json:"parameters"`
	Info       string          `json:"info"`
}

// Image decodes the first returned image.
func (r GenerationResponse) Image() ([]byte, error) {
	return DecodeImageArray(r.Images)
}

type Txt2ImgRequest struct {
	SamplerIndex      string  `json:"sampler_index"`
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt"`
	Seed              int64   `json:"seed"`
	Steps             int     `json:"steps"`
	CfgScale          float64 `json:"cfg_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	DenoisingStrength float64 `json:"denoising_strength"`
}

func NewTxt2ImgRequest(d Defaults) Txt2ImgRequest {
	return Txt2ImgRequest{
		SamplerIndex: d.Sampler,
		Seed:         d.Seed,
		Steps:        d.Steps,
		CfgScale:     d.CfgScale,
		Width:        d.Width,
		Height:       d.Height,
	}
}

type Txt2ImgResponse struct {
	GenerationResponse
}

func (c *Client) Txt2Img(ctx context.Context, body Txt2ImgRequest) (Txt2ImgResponse, error) {
	return call[Txt2ImgResponse](ctx, c, Txt2ImgEndpoint, body)
}

type Img2ImgRequest struct {
	InitImages        []string `json:"init_images"`
	SamplerIndex      string   `json:"sampler_index"`
	Prompt            string   `json:"prompt"`
	NegativePrompt    string   `json:"negative_prompt"`
	Seed              int64    `json:"seed"`
	Steps             int      `json:"steps"`
	CfgScale          float64  `json:"cfg_scale"`
	Width             int      `json:"width"`
	Height            int      `json:"height"`
	DenoisingStrength float64  `json:"denoising_strength"`
}

func NewImg2ImgRequest(d Defaults) Img2ImgRequest {
	return Img2ImgRequest{
		InitImages:        []string{},
		SamplerIndex:      d.Sampler,
		Seed:              d.Seed,
		Steps:             d.Steps,
		CfgScale:          d.CfgScale,
		Width:             d.Width,
		Height:            d.Height,
		DenoisingStrength: 0.75,
	}
}

func (r *Img2ImgRequest) SetImage(data []byte) {
	r.InitImages = EncodeImageArray(data)
}

type Img2ImgResponse struct {
	GenerationResponse
}

func (c *Client) Img2Img(ctx context.Context, body Img2ImgRequest) (Img2ImgResponse, error) {
	return call[Img2ImgResponse](ctx, c, Img2ImgEndpoint, body)
}

type PNGInfoRequest struct {
	Image string `json:"image"`
}

func (r *PNGInfoRequest) SetImage(data []byte) {
	r.Image = EncodeImage(data)
}

type PNGInfoResponse struct {
	Info  string         `json:"info"`
	Items map[string]any `json:"items"`
}

func (r PNGInfoResponse) Parse() Metadata {
	return ParseInfo(r.Info)
}

func (c *Client) PNGInfo(ctx context.Context, body PNGInfoRequest) (PNGInfoResponse, error) {
	return call[PNGInfoResponse](ctx, c, PNGInfoEndpoint, body)
}

type ControlNetTxt2ImgRequest struct {
	ControlNetInputImage []string `json:"controlnet_input_image"`
	ControlNetModule     string   `json:"controlnet_module"`
	ControlNetModel      string   `json:"controlnet_model"`
	SamplerIndex         string   `json:"sampler_index"`
	ControlNetWeight     float64  `json:"controlnet_weight"`
	Prompt               string   `json:"prompt"`
	NegativePrompt       string   `json:"negative_prompt"`
	Seed                 int64    `json:"seed"`
	Steps                int      `json:"steps"`
	CfgScale             float64  `json:"cfg_scale"`
	Width                int      `json:"width"`
	Height               int      `json:"height"`
	DenoisingStrength    float64  `json:"denoising_strength"`
}

func NewControlNetTxt2ImgRequest(d Defaults) ControlNetTxt2ImgRequest {
	return ControlNetTxt2ImgRequest{
		ControlNetInputImage: []string{},
		ControlNetModule:     DefaultControlNetModule,
		ControlNetModel:      DefaultControlNetModel,
		SamplerIndex:         d.Sampler,
		ControlNetWeight:     1,
		Seed:                 d.Seed,
		Steps:                d.Steps,
		CfgScale:             d.CfgScale,
		Width:                d.Width,
		Height:               d.Height,
	}
}

func (r *ControlNetTxt2ImgRequest) SetImage(data []byte) {
	r.ControlNetInputImage = EncodeImageArray(data)
}

type ControlNetTxt2ImgResponse struct {
	GenerationResponse
}

func (c *Client) ControlNetTxt2Img(ctx context.Context, body ControlNetTxt2ImgRequest) (ControlNetTxt2ImgResponse, error) {
	return call[ControlNetTxt2ImgResponse](ctx, c, ControlNetTxt2ImgEndpoint, body)
}
