package image

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/samber/do"
	"github.com/samber/lo"
)

var (
	ErrBusy        = errors.New("image: generation already in progress")
	ErrEmptyPrompt = errors.New("image: prompt is empty")
)

type WebUIGenerator struct {
	Client   *webui.Client
	Defaults webui.Defaults

	busy atomic.Bool
}

func NewWebUIGenerator(i *do.Injector) (Generator, error) {
	return &WebUIGenerator{
		Client:   do.MustInvoke[*webui.Client](i),
		Defaults: do.MustInvoke[webui.Defaults](i),
	}, nil
}

// Generate loads the requested checkpoint, renders one image and reads its
// generation info back from the server. Only one generation runs at a time.
func (g *WebUIGenerator) Generate(ctx context.Context, params Params) (Result, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("generator").With("server", g.Client.BaseURL(), "model", params.Model)

	if !g.busy.CompareAndSwap(false, true) {
		log.Warn("generate already working")
		return Result{}, ErrBusy
	}
	defer g.busy.Store(false)

	if params.Prompt == "" {
		return Result{}, ErrEmptyPrompt
	}

	defaults, err := g.merge(params)
	if err != nil {
		return Result{}, err
	}

	log.Info("image generating started")

	if params.Model != "" {
		if _, err := g.Client.SetOptions(ctx, webui.OptionsRequest{SDModelCheckpoint: params.Model}); err != nil {
			return Result{}, fmt.Errorf("setting checkpoint: %w", err)
		}
	}

	img, err := g.render(ctx, params, defaults)
	if err != nil {
		return Result{}, err
	}

	var body webui.PNGInfoRequest
	body.SetImage(img)
	info, err := g.Client.PNGInfo(ctx, body)
	if err != nil {
		return Result{}, fmt.Errorf("reading png info: %w", err)
	}
	meta := info.Parse()
	seed, _ := meta.Get("Seed")

	log.Info("image generating completed", "seed", seed, "bytes", len(img))
	return Result{Image: img, Seed: seed, Metadata: meta}, nil
}

func (g *WebUIGenerator) merge(params Params) (webui.Defaults, error) {
	d := g.Defaults
	d.Sampler = lo.Ternary(params.Sampler != "", params.Sampler, d.Sampler)
	d.Width = lo.Ternary(params.Width > 0, params.Width, d.Width)
	d.Height = lo.Ternary(params.Height > 0, params.Height, d.Height)
	d.Steps = lo.Ternary(params.Steps > 0, params.Steps, d.Steps)
	d.CfgScale = lo.Ternary(params.CfgScale > 0, params.CfgScale, d.CfgScale)
	if params.Seed != "" {
		seed, err := strconv.ParseInt(params.Seed, 10, 64)
		if err != nil {
			return d, fmt.Errorf("image: invalid seed %q: %w", params.Seed, err)
		}
		d.Seed = seed
	}
	return d, nil
}

func (g *WebUIGenerator) render(ctx context.Context, params Params, d webui.Defaults) ([]byte, error) {
	switch {
	case params.Control != nil:
		body := webui.NewControlNetTxt2ImgRequest(d)
		body.Prompt = params.Prompt
		body.NegativePrompt = params.NegativePrompt
		body.SetImage(params.Control.Image)
		body.ControlNetModule = lo.Ternary(params.Control.Module != "", params.Control.Module, body.ControlNetModule)
		body.ControlNetModel = lo.Ternary(params.Control.Model != "", params.Control.Model, body.ControlNetModel)
		body.ControlNetWeight = lo.Ternary(params.Control.Weight > 0, params.Control.Weight, body.ControlNetWeight)
		resp, err := g.Client.ControlNetTxt2Img(ctx, body)
		if err != nil {
			return nil, fmt.Errorf("controlnet txt2img: %w", err)
		}
		return resp.Image()

	case params.InitImage != nil:
		body := webui.NewImg2ImgRequest(d)
		body.Prompt = params.Prompt
		body.NegativePrompt = params.NegativePrompt
		body.SetImage(params.InitImage)
		resp, err := g.Client.Img2Img(ctx, body)
		if err != nil {
			return nil, fmt.Errorf("img2img: %w", err)
		}
		return resp.Image()

	default:
		body := webui.NewTxt2ImgRequest(d)
		body.Prompt = params.Prompt
		body.NegativePrompt = params.NegativePrompt
		resp, err := g.Client.Txt2Img(ctx, body)
		if err != nil {
			return nil, fmt.Errorf("txt2img: %w", err)
		}
		return resp.Image()
	}
}
