package image

import (
	"context"

	"github.com/dmorgan81/sdbot/internal/webui"
)

type Params struct {
	Model          string  `json:"model"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Seed           string  `json:"seed,omitempty"`
	Sampler        string  `json:"sampler,omitempty"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	Steps          int     `json:"steps,omitempty"`
	CfgScale       float64 `json:"cfg_scale,omitempty"`

	// InitImage switches generation to img2img.
	InitImage []byte   `json:"-"`
	Control   *Control `json:"control,omitempty"`
}

// Control conditions a txt2img run on a structural image via ControlNet.
type Control struct {
	Image  []byte  `json:"-"`
	Module string  `json:"module,omitempty"`
	Model  string  `json:"model,omitempty"`
	Weight float64 `json:"weight,omitempty"`
}

type Result struct {
	Image    []byte
	Seed     string
	Metadata webui.Metadata
}

type Generator interface {
	Generate(context.Context, Params) (Result, error)
}
