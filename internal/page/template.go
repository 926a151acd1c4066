package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

//go:embed assets/page.html
var pageTmpl string

type Params struct {
	Image  string
	Model  string
	Prompt string
	Seed   string
	// Info holds the remaining generation settings read back from the image.
	Info map[string]string
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(_ *do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("page").Parse(pageTmpl))
	})

	log := log.FromContextOrDiscard(ctx).WithGroup("templator")
	log.Info("generating page", "image", params.Image)

	params.Info = lo.OmitByKeys(params.Info, []string{"Prompt", "Seed"})

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
