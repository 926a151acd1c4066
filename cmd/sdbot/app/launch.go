package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dmorgan81/sdbot/internal/launch"
	"github.com/spf13/cobra"
)

type LaunchOptions struct {
	*GlobalOptions
	Script  string
	Wait    bool
	Timeout time.Duration
}

func NewLaunchCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &LaunchOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "launch [-- ARGS...]",
		Short: "Start the webui and optionally wait for its API",
		Example: `  sdbot launch --script ~/stable-diffusion-webui/webui.sh --wait -- --api --listen`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			l := &launch.Launcher{
				Script: opts.Script,
				Args:   args,
				Client: client,
				Stdout: cmd.ErrOrStderr(),
				Stderr: cmd.ErrOrStderr(),
			}

			proc, err := l.Start(context.WithoutCancel(cmd.Context()))
			if err != nil {
				return err
			}
			if !opts.Wait {
				fmt.Fprintf(cmd.OutOrStdout(), "started pid %d\n", proc.Process.Pid)
				return proc.Process.Release()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()
			id, err := l.WaitReady(ctx)
			if err != nil {
				_ = proc.Process.Kill()
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ready at %s (app id %s, pid %d)\n", client.BaseURL(), id.AppID, proc.Process.Pid)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", launch.DefaultScript, "webui launch script")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "block until the API answers")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Minute, "how long --wait waits")

	return cmd
}
