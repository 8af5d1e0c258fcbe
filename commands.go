package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/anas-shakeel/bmpedit/internal/adjustments"
	"github.com/anas-shakeel/bmpedit/internal/bmp"
	"github.com/anas-shakeel/bmpedit/internal/filters"
	"github.com/anas-shakeel/bmpedit/internal/preview"
	"github.com/anas-shakeel/bmpedit/internal/recipe"
	"github.com/anas-shakeel/bmpedit/internal/stream"
)

type editOptions struct {
	output     string
	recipe     string
	saveRecipe string

	hue, saturation, lightness float64
	contrast                   float64
	gamma                      float64
	threshold                  float64
	whiteBalance               bool
	greyscale                  bool
	sepia                      bool
	inverse                    bool
}

func inputArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("no input file has been set")
	}
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "bmpedit [OPTIONS...] input.bmp",
		Short: "Simple edits of 24-bit BMP image files",
		Long: `bmpedit prints the width and the height of the input image. If filters are
selected they are applied to the image (always in the order hsl, contrast,
white balance, gamma, threshold, greyscale, sepia, inverse) and the result is
written in BMP format to the output file. Without any filters only the width
and height of the image are printed.

Files ending in .zst are read and written zstd-compressed.`,
		Args:          inputArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(out, cmd.Flags(), opts, args[0])
		},
	}
	cmd.SetOut(out)

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "out.bmp", "output file for modified images")
	f.Float64VarP(&opts.contrast, "contrast", "c", 0, "contrast adjustment, -100 to 100")
	f.BoolVarP(&opts.greyscale, "greyscale", "g", false, "apply a greyscale (black and white) filter")
	f.BoolVarP(&opts.inverse, "inverse", "i", false, "invert the pixel colors")
	f.BoolVarP(&opts.sepia, "sepia", "s", false, "apply a sepia filter (gives a warmer tone)")
	f.Float64VarP(&opts.threshold, "threshold", "t", 0, "threshold filter, 0.0 to 1.0")
	f.Float64VarP(&opts.gamma, "gamma", "y", 0, "gamma correction, 0.01 to 7.99")
	f.BoolVarP(&opts.whiteBalance, "white-balance", "w", false, "automatic white balance")
	f.Float64VarP(&opts.hue, "hue", "H", 0, "hue shift, -360 to 360")
	f.Float64VarP(&opts.saturation, "saturation", "S", 0, "saturation change, -100 to 100")
	f.Float64VarP(&opts.lightness, "lightness", "L", 0, "lightness change, -100 to 100")
	f.StringVar(&opts.recipe, "recipe", "", "YAML file listing filters to apply (flags override it)")
	f.StringVar(&opts.saveRecipe, "save-recipe", "", "write the applied filters to a YAML recipe file")

	cmd.AddCommand(newInfoCmd(out), newPreviewCmd(out), newCropCmd(out))
	return cmd
}

func newInfoCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "info input.bmp",
		Short: "Print the metadata of a bitmap",
		Args:  inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBitmap(args[0])
			if err != nil {
				return err
			}
			preview.PrintMetadata(out, b)
			return nil
		},
	}
}

func newPreviewCmd(out io.Writer) *cobra.Command {
	var columns int
	cmd := &cobra.Command{
		Use:   "preview input.bmp",
		Short: "Print a bitmap in the terminal",
		Args:  inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBitmap(args[0])
			if err != nil {
				return err
			}
			if columns <= 0 {
				columns = preview.WriterColumns(out)
			}
			return preview.PrintBitmap(out, b, columns)
		},
	}
	cmd.Flags().IntVar(&columns, "columns", 0, "maximum width in terminal columns (default: terminal width)")
	return cmd
}

func newCropCmd(out io.Writer) *cobra.Command {
	var output string
	var x, y, width, height int
	cmd := &cobra.Command{
		Use:   "crop [OPTIONS...] input.bmp",
		Short: "Cut a rectangle out of a bitmap (0,0 is the top-left corner)",
		Args:  inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stream.CheckExtension(output); err != nil {
				return fmt.Errorf("output %w", err)
			}
			b, err := readBitmap(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = b.Pixels.Width - x
			}
			if !cmd.Flags().Changed("height") {
				height = b.Pixels.Height - y
			}

			cropped, err := adjustments.Crop(b, x, y, width, height)
			if err != nil {
				return err
			}
			err = stream.WriteFile(output, func(w io.Writer) error {
				return bmp.Encode(w, cropped)
			})
			if err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(out, "Image width: %dpx\nImage height: %dpx\n", width, height)
			fmt.Fprintln(out, "bmpedit: Success!")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "out.bmp", "output file for the cropped image")
	f.IntVarP(&x, "x", "x", 0, "left edge of the region")
	f.IntVarP(&y, "y", "y", 0, "top edge of the region")
	f.IntVar(&width, "width", 0, "width of the region (default: up to the right edge)")
	f.IntVar(&height, "height", 0, "height of the region (default: up to the bottom edge)")
	return cmd
}

// buildPipeline starts from the recipe, if any, and applies every flag
// that was set on the command line on top of it.
func buildPipeline(flags *pflag.FlagSet, opts *editOptions) (*filters.Pipeline, error) {
	p := filters.NewPipeline()
	if opts.recipe != "" {
		r, err := recipe.Load(opts.recipe)
		if err != nil {
			return nil, err
		}
		if p, err = r.Pipeline(); err != nil {
			return nil, err
		}
	}

	// -H, -S and -L share one HSL pass
	if flags.Changed("hue") || flags.Changed("saturation") || flags.Changed("lightness") {
		var step filters.HSLStep
		if s, ok := p.Get(filters.KindHSL); ok {
			step = s.(filters.HSLStep)
		}
		if flags.Changed("hue") {
			step.Hue = opts.hue
		}
		if flags.Changed("saturation") {
			step.Saturation = opts.saturation
		}
		if flags.Changed("lightness") {
			step.Lightness = opts.lightness
		}
		p.Add(step)
	}
	if flags.Changed("contrast") {
		p.Add(filters.ContrastStep{Contrast: opts.contrast})
	}
	if opts.whiteBalance {
		p.Add(filters.WhiteBalanceStep{})
	}
	if flags.Changed("gamma") {
		p.Add(filters.GammaStep{Gamma: opts.gamma})
	}
	if flags.Changed("threshold") {
		p.Add(filters.ThresholdStep{Threshold: opts.threshold})
	}
	if opts.greyscale {
		p.Add(filters.GreyscaleStep{})
	}
	if opts.sepia {
		p.Add(filters.SepiaStep{})
	}
	if opts.inverse {
		p.Add(filters.InverseStep{})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reads and decodes the bitmap at path
func readBitmap(path string) (*bmp.BitmapImage, error) {
	if err := stream.CheckExtension(path); err != nil {
		return nil, fmt.Errorf("input %w", err)
	}
	r, err := stream.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input file either does not exist or is not readable: %w", err)
	}
	defer r.Close()

	b, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.Filename = path
	return b, nil
}

func runEdit(out io.Writer, flags *pflag.FlagSet, opts *editOptions, input string) error {
	p, err := buildPipeline(flags, opts)
	if err != nil {
		return err
	}
	if err := stream.CheckExtension(opts.output); err != nil {
		return fmt.Errorf("output %w", err)
	}

	b, err := readBitmap(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Image width: %dpx\nImage height: %dpx\n", b.BIHeader.Width, b.BIHeader.Height)

	// Nothing to write without filters
	if p.Len() == 0 {
		fmt.Fprintln(out, "bmpedit: Success!")
		return nil
	}

	if b.Padding > 0 {
		fmt.Fprintf(out, "Padding Bytes: %d\n", b.Padding)
	}

	p.Apply(b.Pixels)

	err = stream.WriteFile(opts.output, func(w io.Writer) error {
		return bmp.Encode(w, b)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}

	if opts.saveRecipe != "" {
		if err := recipe.FromPipeline(p).Save(opts.saveRecipe); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "bmpedit: Success!")
	return nil
}
