package webui

import (
	"context"
	"net/url"
	"strconv"
)

type AppIDResponse struct {
	AppID string `json:"app_id"`
}

func (c *Client) AppID(ctx context.Context) (AppIDResponse, error) {
	return call[AppIDResponse](ctx, c, AppIDEndpoint, nil)
}

type SDModel struct {
	Title     string `json:"title"`
	ModelName string `json:"model_name"`
	Hash      string `json:"hash"`
	SHA256    string `json:"sha256"`
	Filename  string `json:"filename"`
	Config    string `json:"config"`
}

// SDModels lists the checkpoints the server can load. Title is the value
// SetOptions expects for sd_model_checkpoint.
func (c *Client) SDModels(ctx context.Context) ([]SDModel, error) {
	return callList[SDModel](ctx, c, SDModelsEndpoint)
}

type ProgressParams struct {
	SkipCurrentImage bool
}

type ProgressState struct {
	Skipped       bool   `json:"skipped"`
	Interrupted   bool   `json:"interrupted"`
	Job           string `json:"job"`
	JobCount      int    `json:"job_count"`
	JobTimestamp  string `json:"job_timestamp"`
	JobNo         int    `json:"job_no"`
	SamplingStep  int    `json:"sampling_step"`
	SamplingSteps int    `json:"sampling_steps"`
}

type ProgressResponse struct {
	Progress     float64       `json:"progress"`
	ETARelative  float64       `json:"eta_relative"`
	State        ProgressState `json:"state"`
	CurrentImage string        `json:"current_image"`
	TextInfo     string        `json:"textinfo"`
}

// Preview decodes the in-progress image, if the server sent one.
func (r ProgressResponse) Preview() ([]byte, error) {
	if r.CurrentImage == "" {
		return nil, nil
	}
	return DecodeImageArray([]string{r.CurrentImage})
}

func (c *Client) Progress(ctx context.Context, params ProgressParams) (ProgressResponse, error) {
	u := ProgressEndpoint.URL(c.baseURL)
	if params.SkipCurrentImage {
		u += "?" + url.Values{"skip_current_image": {strconv.FormatBool(true)}}.Encode()
	}
	data, err := c.send(ctx, ProgressEndpoint, u, nil)
	if err != nil {
		return ProgressResponse{}, err
	}
	return DecodeSingle[ProgressResponse](data)
}
