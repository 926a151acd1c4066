package handle

import (
	"bytes"
	"context"
	"errors"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/page"
	"github.com/samber/do"
	"github.com/samber/lo"
)

var urlRegexp = regexp.MustCompile(`^https://.+\.amazonaws\.com/(?P<key>.+?)\.html(?:\?.*)?$`)

var ErrUnexpectedURL = errors.New("handle: unexpected object url")

type objectContext struct {
	Url   string `json:"inputS3Url"`
	Route string `json:"outputRoute"`
	Token string `json:"outputToken"`
}

type HtmlRequest struct {
	Id         string        `json:"xAmzRequestId"`
	GetContext objectContext `json:"getObjectContext"`
}

// ObjectClient is the subset of the S3 API the object lambda needs.
type ObjectClient interface {
	HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	WriteGetObjectResponse(context.Context, *s3.WriteGetObjectResponseInput, ...func(*s3.Options)) (*s3.WriteGetObjectResponseOutput, error)
}

type HtmlHandler struct {
	client    ObjectClient
	bucket    string
	templator *page.Templator
}

func NewHtmlHandler(i *do.Injector) (*HtmlHandler, error) {
	return &HtmlHandler{
		client:    do.MustInvoke[*s3.Client](i),
		bucket:    do.MustInvokeNamed[string](i, "bucket"),
		templator: do.MustInvoke[*page.Templator](i),
	}, nil
}

// objectKey extracts the object key, without the .html suffix, from the presigned url.
func objectKey(url string) (string, error) {
	matches := urlRegexp.FindStringSubmatch(url)
	if matches == nil {
		return "", ErrUnexpectedURL
	}
	return matches[urlRegexp.SubexpIndex("key")], nil
}

func (h *HtmlHandler) Handle(ctx context.Context, request HtmlRequest) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("HtmlHandler").With("request", request.Id)
	key, err := objectKey(request.GetContext.Url)
	if err != nil {
		return err
	}
	log.Info("handling lambda request", "key", key)

	out, err := h.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key + ".png"),
	})
	if err != nil {
		return err
	}

	html, err := h.templator.Template(ctx, page.Params{
		Image:  key + ".png",
		Model:  out.Metadata["model"],
		Prompt: out.Metadata["prompt"],
		Seed:   out.Metadata["seed"],
		Info: lo.OmitByValues(map[string]string{
			"Sampler": out.Metadata["sampler"],
			"Steps":   out.Metadata["steps"],
		}, []string{""}),
	})
	if err != nil {
		return err
	}

	_, err = h.client.WriteGetObjectResponse(ctx, &s3.WriteGetObjectResponseInput{
		RequestRoute: aws.String(request.GetContext.Route),
		RequestToken: aws.String(request.GetContext.Token),

		Body:          bytes.NewReader(html),
		ContentLength: aws.Int64(int64(len(html))),
		ContentType:   aws.String("text/html"),
		ETag:          out.ETag,
		LastModified:  out.LastModified,
		Metadata:      out.Metadata,
		StatusCode:    aws.Int32(200),
	})
	return err
}
