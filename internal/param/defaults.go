package param

import (
	"fmt"
	"strconv"

	"github.com/dmorgan81/sdbot/internal/webui"
)

// LoadDefaults builds the baseline generation settings from SD_* variables,
// falling back to webui.StandardDefaults for anything unset.
func LoadDefaults(getenv func(string) string) (webui.Defaults, error) {
	d := webui.StandardDefaults
	if v := getenv("SD_SAMPLER"); v != "" {
		d.Sampler = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SD_WIDTH", &d.Width},
		{"SD_HEIGHT", &d.Height},
		{"SD_STEPS", &d.Steps},
	}
	for _, f := range ints {
		v := getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return d, fmt.Errorf("param: %s must be a positive integer, got %q", f.key, v)
		}
		*f.dst = n
	}

	if v := getenv("SD_CFG_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return d, fmt.Errorf("param: SD_CFG_SCALE: %w", err)
		}
		d.CfgScale = f
	}
	if v := getenv("SD_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return d, fmt.Errorf("param: SD_SEED: %w", err)
		}
		d.Seed = n
	}
	return d, nil
}
