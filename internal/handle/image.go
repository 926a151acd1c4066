package handle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmorgan81/sdbot/internal/image"
	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Mode string

const (
	ModeImg2Img    Mode = "img2img"
	ModeControlNet Mode = "controlnet"
)

var ErrUnknownMode = errors.New("handle: unknown mode")

type ImageInput struct {
	Date   string  `json:"date,omitempty"`
	Mode   Mode    `json:"mode,omitempty"`
	Model  string  `json:"model,omitempty"`
	Prompt string  `json:"prompt,omitempty"`
	Seed   string  `json:"seed,omitempty"`
	Weight float64 `json:"weight,omitempty"`
}

func (i ImageInput) source() string {
	return i.Date + ".png"
}

func (i ImageInput) name() string {
	return fmt.Sprintf("%s-%s.png", i.Date, i.Mode)
}

func (i ImageInput) toImageParams(src []byte) image.Params {
	params := image.Params{
		Model:  i.Model,
		Prompt: i.Prompt,
		Seed:   i.Seed,
	}
	if i.Mode == ModeControlNet {
		params.Control = &image.Control{Image: src, Weight: i.Weight}
	} else {
		params.InitImage = src
	}
	return params
}

func (i ImageInput) toMetadata() map[string]string {
	return lo.OmitByValues(map[string]string{
		"date":   i.Date,
		"mode":   string(i.Mode),
		"model":  i.Model,
		"prompt": i.Prompt,
		"seed":   i.Seed,
	}, []string{""})
}

type ImageOutput ImageInput

// ImageHandler renders a variation of an image that is already stored.
type ImageHandler struct {
	fetcher     store.Fetcher
	generator   image.Generator
	uploader    store.Uploader
	invalidator store.Invalidator
}

func NewImageHandler(i *do.Injector) (*ImageHandler, error) {
	return &ImageHandler{
		fetcher:     do.MustInvoke[store.Fetcher](i),
		generator:   do.MustInvoke[image.Generator](i),
		uploader:    do.MustInvoke[store.Uploader](i),
		invalidator: do.MustInvoke[store.Invalidator](i),
	}, nil
}

func (h *ImageHandler) Handle(ctx context.Context, input ImageInput) (ImageOutput, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("ImageHandler").With("input", input)
	log.Info("handling lambda invocation")

	input.Mode = lo.Ternary(input.Mode != "", input.Mode, ModeImg2Img)
	if input.Mode != ModeImg2Img && input.Mode != ModeControlNet {
		return ImageOutput{}, fmt.Errorf("%w: %s", ErrUnknownMode, input.Mode)
	}
	if input.Date == "" {
		input.Date = time.Now().UTC().Format("20060102")
	}

	src, meta, err := h.fetcher.Fetch(ctx, input.source())
	if err != nil {
		return ImageOutput{}, err
	}
	input.Model = lo.Ternary(input.Model != "", input.Model, meta["model"])
	input.Prompt = lo.Ternary(input.Prompt != "", input.Prompt, meta["prompt"])

	res, err := h.generator.Generate(ctx, input.toImageParams(src))
	if err != nil {
		return ImageOutput{}, err
	}
	input.Seed = res.Seed

	if err := h.uploader.Upload(ctx, store.UploadParams{
		Name:        input.name(),
		Data:        res.Image,
		ContentType: "image/png",
		Metadata:    input.toMetadata(),
	}); err != nil {
		return ImageOutput{}, err
	}

	if err := h.invalidator.Invalidate(ctx, []string{"/" + input.name()}); err != nil {
		return ImageOutput{}, err
	}

	log.Info("variation published", "name", input.name(), "seed", input.Seed)
	return ImageOutput(input), nil
}
