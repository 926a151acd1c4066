package handle

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/sdbot/internal/image"
	"github.com/dmorgan81/sdbot/internal/page"
	"github.com/dmorgan81/sdbot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects  map[string][]byte
	meta     map[string]map[string]string
	uploaded []store.UploadParams
}

func (s *memoryStore) Fetch(_ context.Context, name string) ([]byte, map[string]string, error) {
	data, ok := s.objects[name]
	if !ok {
		return nil, nil, io.ErrUnexpectedEOF
	}
	return data, s.meta[name], nil
}

func (s *memoryStore) Upload(_ context.Context, params store.UploadParams) error {
	s.uploaded = append(s.uploaded, params)
	return nil
}

type fakeGenerator struct {
	params image.Params
}

func (g *fakeGenerator) Generate(_ context.Context, params image.Params) (image.Result, error) {
	g.params = params
	return image.Result{Image: []byte("variation"), Seed: "99"}, nil
}

type recordingInvalidator struct {
	paths []string
}

func (i *recordingInvalidator) Invalidate(_ context.Context, paths []string) error {
	i.paths = append(i.paths, paths...)
	return nil
}

func newImageHandler() (*ImageHandler, *memoryStore, *fakeGenerator, *recordingInvalidator) {
	s := &memoryStore{
		objects: map[string][]byte{"20240101.png": []byte("source")},
		meta:    map[string]map[string]string{"20240101.png": {"model": "v1-5", "prompt": "a kitten"}},
	}
	gen := &fakeGenerator{}
	inv := &recordingInvalidator{}
	return &ImageHandler{fetcher: s, generator: gen, uploader: s, invalidator: inv}, s, gen, inv
}

func TestImageHandlerImg2Img(t *testing.T) {
	h, s, gen, inv := newImageHandler()

	out, err := h.Handle(context.Background(), ImageInput{Date: "20240101"})
	require.NoError(t, err)

	assert.Equal(t, ModeImg2Img, out.Mode)
	assert.Equal(t, "a kitten", gen.params.Prompt)
	assert.Equal(t, "v1-5", gen.params.Model)
	assert.Equal(t, []byte("source"), gen.params.InitImage)
	assert.Nil(t, gen.params.Control)

	require.Len(t, s.uploaded, 1)
	assert.Equal(t, "20240101-img2img.png", s.uploaded[0].Name)
	assert.Equal(t, "99", s.uploaded[0].Metadata["seed"])
	assert.Equal(t, []string{"/20240101-img2img.png"}, inv.paths)
}

func TestImageHandlerControlNet(t *testing.T) {
	h, s, gen, _ := newImageHandler()

	_, err := h.Handle(context.Background(), ImageInput{Date: "20240101", Mode: ModeControlNet, Prompt: "a dog", Weight: 0.5})
	require.NoError(t, err)

	require.NotNil(t, gen.params.Control)
	assert.Equal(t, []byte("source"), gen.params.Control.Image)
	assert.Equal(t, 0.5, gen.params.Control.Weight)
	assert.Equal(t, "a dog", gen.params.Prompt)
	assert.Equal(t, "20240101-controlnet.png", s.uploaded[0].Name)
}

func TestImageHandlerErrors(t *testing.T) {
	h, s, _, _ := newImageHandler()

	_, err := h.Handle(context.Background(), ImageInput{Date: "20240101", Mode: "upscale"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = h.Handle(context.Background(), ImageInput{Date: "19990101"})
	assert.Error(t, err)
	assert.Empty(t, s.uploaded)
}

type fakeObjects struct {
	head    *s3.HeadObjectInput
	written *s3.WriteGetObjectResponseInput
	body    []byte
}

func (o *fakeObjects) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	o.head = in
	return &s3.HeadObjectOutput{
		ETag:     aws.String(`"abc"`),
		Metadata: map[string]string{"model": "v1-5", "prompt": "a kitten", "seed": "42", "sampler": "Euler a"},
	}, nil
}

func (o *fakeObjects) WriteGetObjectResponse(_ context.Context, in *s3.WriteGetObjectResponseInput, _ ...func(*s3.Options)) (*s3.WriteGetObjectResponseOutput, error) {
	o.written = in
	o.body, _ = io.ReadAll(in.Body)
	return &s3.WriteGetObjectResponseOutput{}, nil
}

func TestHtmlHandler(t *testing.T) {
	objects := &fakeObjects{}
	h := &HtmlHandler{client: objects, bucket: "images", templator: &page.Templator{}}

	err := h.Handle(context.Background(), HtmlRequest{
		Id: "req",
		GetContext: objectContext{
			Url:   "https://images.s3.us-east-1.amazonaws.com/20240101.html?X-Amz-Signature=x",
			Route: "route",
			Token: "token",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "20240101.png", *objects.head.Key)
	assert.Equal(t, "images", *objects.head.Bucket)
	assert.Equal(t, "route", *objects.written.RequestRoute)
	assert.Equal(t, "text/html", *objects.written.ContentType)
	assert.Equal(t, int64(len(objects.body)), aws.ToInt64(objects.written.ContentLength))
	assert.Equal(t, int32(200), aws.ToInt32(objects.written.StatusCode))
	assert.Contains(t, string(objects.body), "a kitten")
	assert.Contains(t, string(objects.body), "20240101.png")
}

func TestHtmlHandlerRejectsUnexpectedURL(t *testing.T) {
	h := &HtmlHandler{client: &fakeObjects{}, templator: &page.Templator{}}

	err := h.Handle(context.Background(), HtmlRequest{GetContext: objectContext{Url: "https://example.com/x.png"}})
	assert.ErrorIs(t, err, ErrUnexpectedURL)
}
