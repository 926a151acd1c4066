package inject

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmorgan81/sdbot/internal/handle"
	"github.com/dmorgan81/sdbot/internal/handler"
	"github.com/dmorgan81/sdbot/internal/image"
	"github.com/dmorgan81/sdbot/internal/param"
	"github.com/dmorgan81/sdbot/internal/prompt"
	"github.com/dmorgan81/sdbot/internal/store"
	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestSetupLocal(t *testing.T) {
	dir := t.TempDir()
	injector := Setup(context.Background(), env(map[string]string{
		"SDBOT_PARAMS":    "env",
		"SDBOT_STORE_DIR": dir,
		"SD_SERVER_URL":   "http://gpu-box:7860/",
		"SD_STEPS":        "30",
		"PROMPTS_PARAM":   "PROMPTS",
		"PROMPTS":         "v1-5|a kitten\nsdxl|a dog",
	}))

	client := do.MustInvoke[*webui.Client](injector)
	assert.Equal(t, "http://gpu-box:7860", client.BaseURL())

	defaults := do.MustInvoke[webui.Defaults](injector)
	assert.Equal(t, 30, defaults.Steps)

	assert.IsType(t, &param.EnvFetcher{}, do.MustInvoke[param.Fetcher](injector))
	assert.Equal(t, &store.FileUploader{Dir: dir}, do.MustInvoke[store.Uploader](injector))
	assert.IsType(t, store.NopInvalidator{}, do.MustInvoke[store.Invalidator](injector))
	assert.IsType(t, &image.WebUIGenerator{}, do.MustInvoke[image.Generator](injector))

	randomizer := do.MustInvoke[*prompt.Randomizer](injector)
	choice, err := randomizer.Randomize(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []string{"v1-5", "sdxl"}, choice.Model)

	_, err = do.Invoke[*handle.ImageHandler](injector)
	assert.NoError(t, err)
}

func TestSetupDefaultServer(t *testing.T) {
	injector := Setup(context.Background(), env(nil))

	client := do.MustInvoke[*webui.Client](injector)
	assert.Equal(t, webui.DefaultServerURL, client.BaseURL())
}

func fakeWebUI(t *testing.T) *httptest.Server {
	pixels := []byte("\x89PNG\r\n\x1a\nfake")
	mux := http.NewServeMux()
	mux.HandleFunc("/sdapi/v1/options", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "null")
	})
	images := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a cat", body["prompt"])
		_ = json.NewEncoder(w).Encode(map[string]any{"images": webui.EncodeImageArray(pixels)})
	}
	mux.HandleFunc("/sdapi/v1/txt2img", images)
	mux.HandleFunc("/sdapi/v1/img2img", images)
	mux.HandleFunc("/sdapi/v1/png-info", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"info":"a cat\nSteps: 20, Sampler: Euler a, Seed: 5"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSetupLocalRunsHandlers(t *testing.T) {
	dir := t.TempDir()
	injector := Setup(context.Background(), env(map[string]string{
		"SDBOT_PARAMS":    "env",
		"SDBOT_STORE_DIR": dir,
		"SD_SERVER_URL":   fakeWebUI(t).URL,
		"SITE_URL":        "http://localhost:8080",
	}))

	daily := do.MustInvoke[*handler.Handler](injector)
	out, err := daily.Handle(context.Background(), handler.Input{Model: "m", Prompt: "a cat"})
	require.NoError(t, err)
	assert.Equal(t, "5", out.Seed)

	for _, name := range []string{out.Date + ".png", out.Date + ".html", "latest.png", "latest.html", "rss.xml"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	rss, err := os.ReadFile(filepath.Join(dir, "rss.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(rss), "a cat:m:5")

	variation := do.MustInvoke[*handle.ImageHandler](injector)
	res, err := variation.Handle(context.Background(), handle.ImageInput{Date: out.Date})
	require.NoError(t, err)
	assert.Equal(t, "a cat", res.Prompt)
	assert.Equal(t, "m", res.Model)
	assert.FileExists(t, filepath.Join(dir, out.Date+"-img2img.png"))
}
