package post

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

type RedditPoster struct {
	client    *reddit.Client
	subreddit string
	siteURL   string
}

func NewRedditPoster(i *do.Injector) (Poster, error) {
	subreddit := do.MustInvokeNamed[string](i, "subreddit")
	if subreddit == "" {
		return NopPoster{}, nil
	}

	creds := reddit.Credentials{
		ID:       do.MustInvokeNamed[string](i, "reddit_client_id"),
		Secret:   do.MustInvokeNamed[string](i, "reddit_client_secret"),
		Username: do.MustInvokeNamed[string](i, "reddit_username"),
		Password: do.MustInvokeNamed[string](i, "reddit_password"),
	}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent(creds.Username)))
	if err != nil {
		return nil, err
	}

	return &RedditPoster{
		client:    client,
		subreddit: subreddit,
		siteURL:   do.MustInvokeNamed[string](i, "site_url"),
	}, nil
}

func userAgent(username string) string {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	setting := lo.FindOrElse(settings, debug.BuildSetting{Value: "unknown"}, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	})
	return fmt.Sprintf("web:sdbot:%s (by /u/%s)", setting.Value, username)
}

func title(params Params) string {
	return fmt.Sprintf("%s - %s:%s:%s", params.Date, params.Prompt, params.Model, params.Seed)
}

func (p *RedditPoster) Post(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).WithGroup("reddit").Info("posting to reddit", "subreddit", p.subreddit)
	_, _, err := p.client.Post.SubmitLink(ctx, reddit.SubmitLinkRequest{
		Subreddit:   p.subreddit,
		Title:       title(params),
		URL:         fmt.Sprintf("%s/%s.html", p.siteURL, params.Date),
		SendReplies: lo.ToPtr(false),
	})
	if err != nil {
		return fmt.Errorf("post: submitting to r/%s: %w", p.subreddit, err)
	}
	return nil
}
