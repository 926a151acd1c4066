package prompt

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/samber/do"
)

var ErrNoPrompts = errors.New("prompt: no prompts configured")

// Choice is one configured "model|prompt[|negative prompt]" entry.
type Choice struct {
	Model          string
	Prompt         string
	NegativePrompt string
}

type Randomizer struct {
	prompts []string

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomizer(i *do.Injector) (*Randomizer, error) {
	prompts := do.MustInvokeNamed[[]string](i, "prompts")
	return New(prompts, rand.NewSource(time.Now().UTC().Unix())), nil
}

func New(prompts []string, src rand.Source) *Randomizer {
	return &Randomizer{prompts: prompts, rnd: rand.New(src)}
}

func (r *Randomizer) Randomize(ctx context.Context) (Choice, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("randomizer")
	log.Info("getting random model and prompt", "choices", len(r.prompts))

	if len(r.prompts) == 0 {
		return Choice{}, ErrNoPrompts
	}

	r.mu.Lock()
	idx := r.rnd.Intn(len(r.prompts))
	r.mu.Unlock()

	return Parse(r.prompts[idx])
}

func Parse(entry string) (Choice, error) {
	parts := strings.SplitN(entry, "|", 3)
	if len(parts) < 2 || parts[1] == "" {
		return Choice{}, fmt.Errorf("prompt: malformed entry %q", entry)
	}
	c := Choice{Model: parts[0], Prompt: parts[1]}
	if len(parts) == 3 {
		c.NegativePrompt = parts[2]
	}
	return c, nil
}
