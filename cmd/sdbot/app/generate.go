package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmorgan81/sdbot/internal/image"
	"github.com/dmorgan81/sdbot/internal/store"
	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

// GenerateOptions holds the flags shared by the generation commands. Zero
// values fall back to the configured defaults.
type GenerateOptions struct {
	*GlobalOptions
	Checkpoint     string
	Prompt         string
	NegativePrompt string
	Sampler        string
	Width          int
	Height         int
	Steps          int
	CfgScale       float64
	Seed           string
	Out            string
	Format         string
}

func (o *GenerateOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Checkpoint, "checkpoint", "", "checkpoint to load before generating")
	cmd.Flags().StringVarP(&o.Prompt, "prompt", "p", "", "prompt")
	cmd.Flags().StringVarP(&o.NegativePrompt, "negative-prompt", "n", "", "negative prompt")
	cmd.Flags().StringVar(&o.Sampler, "sampler", "", "sampler name")
	cmd.Flags().IntVar(&o.Width, "width", 0, "image width")
	cmd.Flags().IntVar(&o.Height, "height", 0, "image height")
	cmd.Flags().IntVar(&o.Steps, "steps", 0, "sampling steps")
	cmd.Flags().Float64Var(&o.CfgScale, "cfg-scale", 0, "classifier free guidance scale")
	cmd.Flags().StringVar(&o.Seed, "seed", "", "seed, -1 for random")
	cmd.Flags().StringVarP(&o.Out, "out", "o", ".", "directory to write the image to")
	cmd.Flags().StringVar(&o.Format, "format", "png", "output format (png, jpeg, bmp)")
	_ = cmd.MarkFlagRequired("prompt")
}

func (o *GenerateOptions) params() image.Params {
	return image.Params{
		Model:          o.Checkpoint,
		Prompt:         o.Prompt,
		NegativePrompt: o.NegativePrompt,
		Seed:           o.Seed,
		Sampler:        o.Sampler,
		Width:          o.Width,
		Height:         o.Height,
		Steps:          o.Steps,
		CfgScale:       o.CfgScale,
	}
}

// run generates one image and writes it below Out under a random name.
func (o *GenerateOptions) run(cmd *cobra.Command, params image.Params) error {
	ctx := cmd.Context()

	format, err := store.ParseFormat(o.Format)
	if err != nil {
		return err
	}

	generator, err := do.Invoke[image.Generator](o.injector(ctx))
	if err != nil {
		return err
	}
	res, err := generator.Generate(ctx, params)
	if err != nil {
		return err
	}

	data, err := store.Encode(res.Image, format)
	if err != nil {
		return err
	}

	name := uuid.NewString() + format.Ext()
	uploader := &store.FileUploader{Dir: o.Out}
	if err := uploader.Upload(ctx, store.UploadParams{
		Name:        name,
		Data:        data,
		ContentType: format.ContentType(),
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\tseed %s\n", filepath.Join(o.Out, name), res.Seed)
	return nil
}

// readImage loads a source image and converts it to PNG, the format the
// server expects in init and control images.
func readImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return store.Encode(data, store.PNG)
}

func NewTxt2ImgCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &GenerateOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "txt2img",
		Short: "Generate an image from a prompt",
		Example: `  sdbot txt2img -p "a red ball" --steps 50 -o out/
  sdbot txt2img -p "a kitten" --checkpoint "v1-5-pruned-emaonly.safetensors" --format jpeg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, opts.params())
		},
	}
	opts.addFlags(cmd)

	return cmd
}

func NewImg2ImgCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &GenerateOptions{GlobalOptions: globalOpts}
	var source string

	cmd := &cobra.Command{
		Use:   "img2img",
		Short: "Generate a variation of an existing image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := readImage(source)
			if err != nil {
				return err
			}
			params := opts.params()
			params.InitImage = src
			return opts.run(cmd, params)
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&source, "image", "", "source image")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func NewControlNetCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &GenerateOptions{GlobalOptions: globalOpts}
	var (
		source  string
		control image.Control
	)

	cmd := &cobra.Command{
		Use:   "controlnet",
		Short: "Generate an image guided by a control image",
		Example: `  sdbot controlnet -p "a castle" --image depth.png --module depth_midas --weight 0.8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := readImage(source)
			if err != nil {
				return err
			}
			control.Image = src
			params := opts.params()
			params.Control = &control
			return opts.run(cmd, params)
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&source, "image", "", "control image")
	cmd.Flags().StringVar(&control.Module, "module", "", "preprocessor module")
	cmd.Flags().StringVar(&control.Model, "model", "", "controlnet model")
	cmd.Flags().Float64Var(&control.Weight, "weight", 0, "control weight")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}
