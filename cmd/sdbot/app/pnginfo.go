package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/spf13/cobra"
)

func NewPNGInfoCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "png-info FILE",
		Short: "Print the generation settings embedded in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}

			var body webui.PNGInfoRequest
			body.SetImage(data)
			info, err := client.PNGInfo(cmd.Context(), body)
			if err != nil {
				return err
			}

			meta := info.Parse()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range meta.Keys() {
				value, _ := meta.Get(key)
				fmt.Fprintf(w, "%s\t%s\n", key, value)
			}
			return w.Flush()
		},
	}
}
