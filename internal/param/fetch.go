package param

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Fetcher interface {
	Fetch(context.Context, string) (string, error)
	FetchAll(context.Context, string) ([]string, error)
}

// EnvFetcher reads parameters from the environment for local runs. FetchAll
// splits the variable on newlines.
type EnvFetcher struct {
	Getenv func(string) string
}

func (f *EnvFetcher) Fetch(_ context.Context, key string) (string, error) {
	v := f.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("param: %s is not set", key)
	}
	return v, nil
}

func (f *EnvFetcher) FetchAll(ctx context.Context, key string) ([]string, error) {
	v, err := f.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	lines := lo.Map(strings.Split(v, "\n"), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(lines), nil
}
