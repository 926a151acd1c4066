package app

import (
	"fmt"

	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewStatusCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the server's state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}

			var (
				id       webui.AppIDResponse
				flags    webui.CmdFlags
				models   []webui.SDModel
				progress webui.ProgressResponse
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				id, err = client.AppID(ctx)
				return err
			})
			g.Go(func() (err error) {
				flags, err = client.CmdFlags(ctx)
				return err
			})
			g.Go(func() (err error) {
				models, err = client.SDModels(ctx)
				return err
			})
			g.Go(func() (err error) {
				progress, err = client.Progress(ctx, webui.ProgressParams{SkipCurrentImage: true})
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "server:   %s\n", client.BaseURL())
			fmt.Fprintf(out, "app id:   %s\n", id.AppID)
			fmt.Fprintf(out, "api:      %t\n", flags.API)
			fmt.Fprintf(out, "models:   %d\n", len(models))
			fmt.Fprintf(out, "progress: %.0f%% %s\n", progress.Progress*100, progress.State.Job)
			return nil
		},
	}
}
