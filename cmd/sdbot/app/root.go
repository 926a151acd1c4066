// Package app implements the sdbot command line, a local front end for a
// Stable Diffusion WebUI server.
package app

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/dmorgan81/sdbot/internal/inject"
	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

const cliName = "sdbot"

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	ServerURL string
	LogLevel  string
}

// getenv lets flags take precedence over the environment the injector reads.
func (o *GlobalOptions) getenv(key string) string {
	if key == "SD_SERVER_URL" && o.ServerURL != "" {
		return o.ServerURL
	}
	return os.Getenv(key)
}

func (o *GlobalOptions) injector(ctx context.Context) *do.Injector {
	return inject.Setup(ctx, o.getenv)
}

func (o *GlobalOptions) client(ctx context.Context) (*webui.Client, error) {
	return do.Invoke[*webui.Client](o.injector(ctx))
}

func NewSDBotCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: "Drive a local Stable Diffusion WebUI",
		Long: `sdbot talks to the HTTP API of a running Stable Diffusion WebUI.

The server address defaults to $SD_SERVER_URL, then http://127.0.0.1:7860.
Generation defaults come from the SD_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := log.New(cmd.ErrOrStderr(), log.ParseLevel(opts.LogLevel))
			cmd.SetContext(log.NewContext(cmd.Context(), logger))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "webui server address")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		NewAppIDCommand(opts),
		NewFlagsCommand(opts),
		NewModelsCommand(opts),
		NewProgressCommand(opts),
		NewOptionsCommand(opts),
		NewTxt2ImgCommand(opts),
		NewImg2ImgCommand(opts),
		NewControlNetCommand(opts),
		NewPNGInfoCommand(opts),
		NewStatusCommand(opts),
		NewLaunchCommand(opts),
	)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
