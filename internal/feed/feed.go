package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Entry is one published image as the feed sees it.
type Entry struct {
	Metadata map[string]string
	Updated  time.Time
}

// Source lists the published images.
type Source interface {
	Entries(context.Context) ([]Entry, error)
}

type Generator struct {
	source  Source
	siteURL string
}

func New(source Source, siteURL string) *Generator {
	return &Generator{source: source, siteURL: siteURL}
}

func NewS3Generator(i *do.Injector) (*Generator, error) {
	source, err := NewS3Source(i)
	if err != nil {
		return nil, err
	}
	return New(source, do.MustInvokeNamed[string](i, "site_url")), nil
}

// published reports whether key is a dated image rather than latest.png or a
// variation such as 20240101-img2img.png.
func published(key string) bool {
	return strings.HasSuffix(key, ".png") && !strings.HasPrefix(key, "latest") && !strings.Contains(key, "-")
}

// Item turns the metadata stored with a generated image into a feed entry.
func Item(siteURL string, meta map[string]string, updated time.Time) *feeds.Item {
	details := lo.Filter([]string{
		meta["sampler"],
		lo.Ternary(meta["steps"] != "", meta["steps"]+" steps", ""),
		lo.Ternary(meta["seed"] != "", "seed "+meta["seed"], ""),
	}, func(s string, _ int) bool { return s != "" })

	return &feeds.Item{
		Title:       fmt.Sprintf("%s:%s:%s", meta["prompt"], meta["model"], meta["seed"]),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/%s.html", siteURL, meta["date"])},
		Description: strings.Join(details, ", "),
		Enclosure: &feeds.Enclosure{
			Url:  fmt.Sprintf("%s/%s.png", siteURL, meta["date"]),
			Type: "image/png",
		},
		Updated: updated,
	}
}

func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed")
	log.Info("generating rss feed")

	entries, err := g.source.Entries(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("collected feed items", "count", len(entries))

	feed := feeds.Feed{
		Title:       "sdbot",
		Description: "Daily Stable Diffusion generations",
		Link:        &feeds.Link{Href: g.siteURL},
		Updated:     time.Now(),
		Items: lo.Map(entries, func(e Entry, _ int) *feeds.Item {
			return Item(g.siteURL, e.Metadata, e.Updated)
		}),
	}
	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.After(b.Updated)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
