package inject

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/sdbot/internal/feed"
	"github.com/dmorgan81/sdbot/internal/handle"
	"github.com/dmorgan81/sdbot/internal/handler"
	"github.com/dmorgan81/sdbot/internal/image"
	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/page"
	"github.com/dmorgan81/sdbot/internal/param"
	"github.com/dmorgan81/sdbot/internal/post"
	"github.com/dmorgan81/sdbot/internal/prompt"
	"github.com/dmorgan81/sdbot/internal/store"
	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Setup registers every component lazily. Nothing touches AWS until a
// provider that needs it is invoked.
func Setup(ctx context.Context, getenv func(string) string) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	do.Provide[*webui.Client](injector, func(i *do.Injector) (*webui.Client, error) {
		url := lo.Ternary(getenv("SD_SERVER_URL") != "", getenv("SD_SERVER_URL"), webui.DefaultServerURL)
		return webui.NewClient(url, webui.WithHTTPClient(do.MustInvoke[*http.Client](i))), nil
	})
	do.Provide[webui.Defaults](injector, func(i *do.Injector) (webui.Defaults, error) {
		return param.LoadDefaults(getenv)
	})

	if getenv("SDBOT_PARAMS") == "env" {
		do.ProvideValue[param.Fetcher](injector, &param.EnvFetcher{Getenv: getenv})
	} else {
		do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	}

	if dir := getenv("SDBOT_STORE_DIR"); dir != "" {
		do.ProvideValue[store.Uploader](injector, &store.FileUploader{Dir: dir})
		do.ProvideValue[store.Fetcher](injector, &store.FileFetcher{Dir: dir})
		do.ProvideValue[store.Invalidator](injector, store.NopInvalidator{})
		do.Provide[*feed.Generator](injector, func(i *do.Injector) (*feed.Generator, error) {
			return feed.New(&feed.DirSource{Dir: dir}, do.MustInvokeNamed[string](i, "site_url")), nil
		})
	} else {
		do.Provide[store.Uploader](injector, store.NewS3Uploader)
		do.Provide[store.Fetcher](injector, store.NewS3Fetcher)
		do.Provide[store.Invalidator](injector, store.NewCloudFrontInvalidator)
		do.Provide[*feed.Generator](injector, feed.NewS3Generator)
	}

	do.Provide[*prompt.Randomizer](injector, prompt.NewRandomizer)
	do.Provide[image.Generator](injector, image.NewWebUIGenerator)
	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.Provide[post.Poster](injector, post.NewRedditPoster)

	fetch := func(name string) func(*do.Injector) (string, error) {
		return func(i *do.Injector) (string, error) {
			return do.MustInvoke[param.Fetcher](i).Fetch(ctx, getenv(name))
		}
	}
	do.ProvideNamed[[]string](injector, "prompts", func(i *do.Injector) ([]string, error) {
		return do.MustInvoke[param.Fetcher](i).FetchAll(ctx, getenv("PROMPTS_PARAM"))
	})
	do.ProvideNamed[string](injector, "reddit_client_id", fetch("REDDIT_CLIENT_ID_PARAM"))
	do.ProvideNamed[string](injector, "reddit_client_secret", fetch("REDDIT_CLIENT_SECRET_PARAM"))
	do.ProvideNamed[string](injector, "reddit_username", fetch("REDDIT_USERNAME_PARAM"))
	do.ProvideNamed[string](injector, "reddit_password", fetch("REDDIT_PASSWORD_PARAM"))
	do.ProvideNamedValue[string](injector, "bucket", getenv("BUCKET"))
	do.ProvideNamedValue[string](injector, "distribution", getenv("DISTRIBUTION"))
	do.ProvideNamedValue[string](injector, "subreddit", getenv("SUBREDDIT"))
	do.ProvideNamedValue[string](injector, "site_url", getenv("SITE_URL"))

	do.Provide[*handler.Handler](injector, handler.NewHandler)
	do.Provide[*handle.ImageHandler](injector, handle.NewImageHandler)
	do.Provide[*handle.HtmlHandler](injector, handle.NewHtmlHandler)

	return injector
}
