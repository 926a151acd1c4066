package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodedFields(t *testing.T, body any) map[string]any {
	t.Helper()
	data, err := EncodeBody(body)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	return fields
}

func TestEncodeTxt2ImgBody(t *testing.T) {
	body := NewTxt2ImgRequest(Defaults{Sampler: "DPM++ 2M", Width: 512, Height: 768, Steps: 30, CfgScale: 6.5, Seed: 99})
	body.Prompt = "a red ball"
	body.NegativePrompt = "blurry"

	assert.Equal(t, map[string]any{
		"sampler_index":      "DPM++ 2M",
		"prompt":             "a red ball",
		"negative_prompt":    "blurry",
		"seed":               float64(99),
		"steps":              float64(30),
		"cfg_scale":          6.5,
		"width":              float64(512),
		"height":             float64(768),
		"denoising_strength": float64(0),
	}, encodedFields(t, body))
}

func TestEncodeImg2ImgBody(t *testing.T) {
	body := NewImg2ImgRequest(StandardDefaults)
	assert.Equal(t, []any{}, encodedFields(t, body)["init_images"])

	body.SetImage([]byte("src"))
	fields := encodedFields(t, body)
	assert.Equal(t, []any{EncodeImage([]byte("src"))}, fields["init_images"])
	assert.Equal(t, 0.75, fields["denoising_strength"])
	assert.Equal(t, "Euler a", fields["sampler_index"])
	assert.Equal(t, float64(-1), fields["seed"])
	assert.Len(t, fields, 10)
}

func TestEncodeControlNetBody(t *testing.T) {
	body := NewControlNetTxt2ImgRequest(StandardDefaults)
	body.SetImage([]byte("depth"))
	body.ControlNetWeight = 0.5

	fields := encodedFields(t, body)
	assert.Equal(t, []any{EncodeImage([]byte("depth"))}, fields["controlnet_input_image"])
	assert.Equal(t, "none", fields["controlnet_module"])
	assert.Equal(t, "control_v11f1p_sd15_depth_fp16 [4b72d323]", fields["controlnet_model"])
	assert.Equal(t, 0.5, fields["controlnet_weight"])
	assert.Equal(t, float64(960), fields["width"])
	assert.Equal(t, float64(540), fields["height"])
	assert.Equal(t, float64(20), fields["steps"])
	assert.Equal(t, float64(7), fields["cfg_scale"])
	assert.Len(t, fields, 13)
}

func TestEncodeSmallBodies(t *testing.T) {
	assert.Equal(t, map[string]any{"sd_model_checkpoint": "modelA"},
		encodedFields(t, OptionsRequest{SDModelCheckpoint: "modelA"}))

	var info PNGInfoRequest
	info.SetImage([]byte{1, 2, 3})
	assert.Equal(t, map[string]any{"image": "AQID"}, encodedFields(t, info))
}

func TestCmdFlagsRoundTrip(t *testing.T) {
	in := CmdFlags{Ckpt: "model.ckpt", Port: 7860, API: true, UseCPU: []string{"interrogate"}, MaxBatchCount: 16}
	data, err := EncodeBody(in)
	require.NoError(t, err)

	out, err := DecodeSingle[CmdFlags](data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEndpointTable(t *testing.T) {
	require.Len(t, Endpoints, 9)
	for _, ep := range Endpoints {
		assert.Equal(t, "application/json", ep.Headers.At(0).Value, ep.Name)
		assert.Equal(t, ep.Method == http.MethodPost, ep.HasBody, ep.Name)
	}
	assert.Equal(t, "http://127.0.0.1:7860/controlnet/txt2img", ControlNetTxt2ImgEndpoint.URL(DefaultServerURL))
	assert.Equal(t, List, SDModelsEndpoint.Arity)
}

func TestNewClientBaseURL(t *testing.T) {
	assert.Equal(t, DefaultServerURL, NewClient("").BaseURL())
	assert.Equal(t, "http://gpu:7861", NewClient("http://gpu:7861/").BaseURL())
}

func TestClientGetEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/app_id", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"app_id":"3121430218"}`)
	})
	mux.HandleFunc("/sdapi/v1/cmd-flags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"api":true,"port":null,"ckpt_dir":"/models","unknown_flag":"x"}`)
	})
	mux.HandleFunc("/sdapi/v1/sd-models", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"title":"v1-5.safetensors [6ce0161689]","model_name":"v1-5","hash":null}]`)
	})
	mux.HandleFunc("/sdapi/v1/progress", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("skip_current_image"))
		_, _ = io.WriteString(w, `{"progress":0.5,"eta_relative":3.2,"state":{"job_count":1,"sampling_step":10,"sampling_steps":20},"current_image":null,"textinfo":""}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	client := NewClient(srv.URL, WithHTTPClient(srv.Client()))

	id, err := client.AppID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3121430218", id.AppID)

	flags, err := client.CmdFlags(ctx)
	require.NoError(t, err)
	assert.True(t, flags.API)
	assert.Zero(t, flags.Port)
	assert.Equal(t, "/models", flags.CkptDir)

	models, err := client.SDModels(ctx)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "v1-5", models[0].ModelName)

	progress, err := client.Progress(ctx, ProgressParams{SkipCurrentImage: true})
	require.NoError(t, err)
	assert.Equal(t, 0.5, progress.Progress)
	assert.Equal(t, 10, progress.State.SamplingStep)
	preview, err := progress.Preview()
	require.NoError(t, err)
	assert.Nil(t, preview)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ControlNetTxt2Img(context.Background(), NewControlNetTxt2ImgRequest(StandardDefaults))
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
}

// fakeServer answers options, txt2img, img2img, controlnet and png-info the
// way the WebUI does, remembering the bodies it saw.
type fakeServer struct {
	t          *testing.T
	png        []byte
	checkpoint string
	txt2img    Txt2ImgRequest
	img2img    Img2ImgRequest
	controlnet ControlNetTxt2ImgRequest
}

func (f *fakeServer) handler() http.Handler {
	decode := func(r *http.Request, v any) {
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(v))
	}
	images := func(w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images":     EncodeImageArray(f.png),
			"parameters": map[string]any{"prompt": "echo"},
			"info":       `{"seed": 1234}`,
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/sdapi/v1/options", func(w http.ResponseWriter, r *http.Request) {
		var body OptionsRequest
		decode(r, &body)
		f.checkpoint = body.SDModelCheckpoint
		_, _ = io.WriteString(w, "null")
	})
	mux.HandleFunc("/sdapi/v1/txt2img", func(w http.ResponseWriter, r *http.Request) {
		decode(r, &f.txt2img)
		images(w)
	})
	mux.HandleFunc("/sdapi/v1/img2img", func(w http.ResponseWriter, r *http.Request) {
		decode(r, &f.img2img)
		images(w)
	})
	mux.HandleFunc("/controlnet/txt2img", func(w http.ResponseWriter, r *http.Request) {
		decode(r, &f.controlnet)
		images(w)
	})
	mux.HandleFunc("/sdapi/v1/png-info", func(w http.ResponseWriter, r *http.Request) {
		var body PNGInfoRequest
		decode(r, &body)
		if body.Image != EncodeImage(f.png) {
			http.Error(w, "unexpected image", http.StatusUnprocessableEntity)
			return
		}
		_ = json.NewEncoder(w).Encode(PNGInfoResponse{
			Info: f.txt2img.Prompt + "\nSteps: 50, Sampler: Euler a, CFG scale: 7, Seed: 1234, Size: 960x540, Model: " + f.checkpoint,
		})
	})
	return mux
}

func TestGenerationFlow(t *testing.T) {
	fake := &fakeServer{t: t, png: testPNG(t)}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	client := NewClient(srv.URL)

	_, err := client.SetOptions(ctx, OptionsRequest{SDModelCheckpoint: "modelA"})
	require.NoError(t, err)
	assert.Equal(t, "modelA", fake.checkpoint)

	body := NewTxt2ImgRequest(StandardDefaults)
	body.Prompt = "a red ball"
	body.Width, body.Height = 960, 540
	body.Steps = 50
	body.CfgScale = 7
	body.Seed = -1

	resp, err := client.Txt2Img(ctx, body)
	require.NoError(t, err)
	assert.Equal(t, body, fake.txt2img)
	assert.JSONEq(t, `{"prompt":"echo"}`, string(resp.Parameters))

	img, err := resp.Image()
	require.NoError(t, err)
	require.NotEmpty(t, img)
	assert.Equal(t, fake.png, img)

	var infoBody PNGInfoRequest
	infoBody.SetImage(img)
	info, err := client.PNGInfo(ctx, infoBody)
	require.NoError(t, err)

	meta := info.Parse()
	seed, ok := meta.Get("Seed")
	require.True(t, ok)
	assert.Equal(t, "1234", seed)
	prompt, _ := meta.Get("Prompt")
	assert.Equal(t, "a red ball", prompt)
}

func TestImg2ImgAndControlNet(t *testing.T) {
	fake := &fakeServer{t: t, png: testPNG(t)}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	client := NewClient(srv.URL)

	i2i := NewImg2ImgRequest(StandardDefaults)
	i2i.Prompt = "watercolor"
	i2i.SetImage([]byte("source"))
	resp, err := client.Img2Img(ctx, i2i)
	require.NoError(t, err)
	assert.Equal(t, i2i, fake.img2img)
	img, err := resp.Image()
	require.NoError(t, err)
	assert.Equal(t, fake.png, img)

	cn := NewControlNetTxt2ImgRequest(StandardDefaults)
	cn.SetImage([]byte("depth"))
	cn.ControlNetModule = "depth_midas"
	cresp, err := client.ControlNetTxt2Img(ctx, cn)
	require.NoError(t, err)
	assert.Equal(t, cn, fake.controlnet)
	img, err = cresp.Image()
	require.NoError(t, err)
	assert.Equal(t, fake.png, img)
}
