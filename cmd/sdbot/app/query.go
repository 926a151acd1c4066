package app

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/spf13/cobra"
)

func NewAppIDCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "app-id",
		Short: "Print the server's app id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			id, err := client.AppID(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.AppID)
			return nil
		},
	}
}

func NewFlagsCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "Print the command line flags the server was started with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			flags, err := client.CmdFlags(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), flags)
		},
	}
}

func NewModelsCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "models",
		Aliases: []string{"ls"},
		Short:   "List the checkpoints the server knows about",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			models, err := client.SDModels(cmd.Context())
			if err != nil {
				return err
			}
			writeModels(cmd.OutOrStdout(), models)
			return nil
		},
	}
}

func writeModels(out io.Writer, models []webui.SDModel) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TITLE\tHASH\tFILENAME")
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Title, m.Hash, m.Filename)
	}
	w.Flush()
}

type ProgressOptions struct {
	*GlobalOptions
	SkipCurrentImage bool
	Preview          string
}

func NewProgressCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &ProgressOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the progress of the running generation",
		Example: `  # Poll progress without transferring the preview
  sdbot progress --skip-current-image

  # Save the in-progress preview
  sdbot progress --preview preview.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			progress, err := client.Progress(cmd.Context(), webui.ProgressParams{
				SkipCurrentImage: opts.SkipCurrentImage,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.0f%% (eta %.1fs) step %d/%d %s\n",
				progress.Progress*100, progress.ETARelative,
				progress.State.SamplingStep, progress.State.SamplingSteps, progress.State.Job)

			if opts.Preview == "" {
				return nil
			}
			img, err := progress.Preview()
			if err != nil || img == nil {
				return err
			}
			return os.WriteFile(opts.Preview, img, 0o644)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipCurrentImage, "skip-current-image", false, "do not request the in-progress preview")
	cmd.Flags().StringVar(&opts.Preview, "preview", "", "write the in-progress preview to this file")

	return cmd
}

func NewOptionsCommand(opts *GlobalOptions) *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Switch the server's active checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			_, err = client.SetOptions(cmd.Context(), webui.OptionsRequest{SDModelCheckpoint: model})
			return err
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "checkpoint title, as listed by the models command")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
