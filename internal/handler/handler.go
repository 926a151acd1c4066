package handler

import (
	"context"
	"time"

	"github.com/dmorgan81/sdbot/internal/feed"
	"github.com/dmorgan81/sdbot/internal/image"
	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/page"
	"github.com/dmorgan81/sdbot/internal/post"
	"github.com/dmorgan81/sdbot/internal/prompt"
	"github.com/dmorgan81/sdbot/internal/store"
	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Input struct {
	Date           string `json:"date,omitempty"`
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Seed           string `json:"seed,omitempty"`
}

func (i Input) toImageParams() image.Params {
	return image.Params{
		Model:          i.Model,
		Prompt:         i.Prompt,
		NegativePrompt: i.NegativePrompt,
		Seed:           i.Seed,
	}
}

func (i Input) toPageParams(meta webui.Metadata) page.Params {
	return page.Params{
		Image:  i.Date + ".png",
		Model:  i.Model,
		Prompt: i.Prompt,
		Seed:   i.Seed,
		Info:   meta.Map(),
	}
}

func (i Input) toPostParams() post.Params {
	return post.Params{
		Date:   i.Date,
		Model:  i.Model,
		Prompt: i.Prompt,
		Seed:   i.Seed,
	}
}

func (i Input) toMetadata(meta webui.Metadata) map[string]string {
	sampler, _ := meta.Get("Sampler")
	steps, _ := meta.Get("Steps")
	return lo.OmitByValues(map[string]string{
		"date":    i.Date,
		"model":   i.Model,
		"prompt":  i.Prompt,
		"seed":    i.Seed,
		"sampler": sampler,
		"steps":   steps,
	}, []string{""})
}

type Output Input

type Feeder interface {
	Generate(context.Context) ([]byte, error)
}

type Handler struct {
	randomizer  *prompt.Randomizer
	generator   image.Generator
	uploader    store.Uploader
	invalidator store.Invalidator
	templator   *page.Templator
	feeder      Feeder
	poster      post.Poster
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		randomizer:  do.MustInvoke[*prompt.Randomizer](i),
		generator:   do.MustInvoke[image.Generator](i),
		uploader:    do.MustInvoke[store.Uploader](i),
		invalidator: do.MustInvoke[store.Invalidator](i),
		templator:   do.MustInvoke[*page.Templator](i),
		feeder:      do.MustInvoke[*feed.Generator](i),
		poster:      do.MustInvoke[post.Poster](i),
	}, nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("input", input)
	log.Info("handling lambda invocation")

	if input.Model == "" || input.Prompt == "" {
		choice, err := h.randomizer.Randomize(ctx)
		if err != nil {
			return Output{}, err
		}
		input.Model = lo.Ternary(input.Model != "", input.Model, choice.Model)
		input.Prompt = lo.Ternary(input.Prompt != "", input.Prompt, choice.Prompt)
		input.NegativePrompt = lo.Ternary(input.NegativePrompt != "", input.NegativePrompt, choice.NegativePrompt)
	}

	latest := false
	if input.Date == "" {
		input.Date = time.Now().UTC().Format("20060102")
		latest = true
	}

	res, err := h.generator.Generate(ctx, input.toImageParams())
	if err != nil {
		return Output{}, err
	}
	input.Seed = res.Seed

	html, err := h.templator.Template(ctx, input.toPageParams(res.Metadata))
	if err != nil {
		return Output{}, err
	}

	metadata := input.toMetadata(res.Metadata)
	uploads := []store.UploadParams{
		{
			Name:        input.Date + ".png",
			Data:        res.Image,
			ContentType: "image/png",
			Metadata:    metadata,
		},
		{
			Name:        input.Date + ".html",
			Data:        html,
			ContentType: "text/html",
			Metadata:    metadata,
		},
	}
	if latest {
		uploads = append(uploads,
			store.UploadParams{
				Name:        "latest.png",
				Data:        res.Image,
				ContentType: "image/png",
				Metadata:    metadata,
			},
			store.UploadParams{
				Name:        "latest.html",
				Data:        html,
				ContentType: "text/html",
				Metadata:    metadata,
			},
		)
	}
	for _, u := range uploads {
		if err := h.uploader.Upload(ctx, u); err != nil {
			return Output{}, err
		}
	}

	rss, err := h.feeder.Generate(ctx)
	if err != nil {
		return Output{}, err
	}
	if err := h.uploader.Upload(ctx, store.UploadParams{
		Name:        "rss.xml",
		Data:        rss,
		ContentType: "application/rss+xml",
	}); err != nil {
		return Output{}, err
	}

	paths := []string{"/" + input.Date + ".png", "/" + input.Date + ".html", "/rss.xml"}
	if latest {
		paths = append(paths, "/latest.png", "/latest.html")
	}
	if err := h.invalidator.Invalidate(ctx, paths); err != nil {
		return Output{}, err
	}

	if err := h.poster.Post(ctx, input.toPostParams()); err != nil {
		// the image is already published; a failed announcement is not fatal
		log.Warn("failed to post", "error", err)
	}

	log.Info("image published", "seed", input.Seed)
	return Output(input), nil
}
