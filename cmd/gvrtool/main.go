package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gvr"
	"github.com/bodgit/gvr/texture"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gvr.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var dataFormats = map[string]texture.DataFormat{
	"i4":     texture.Intensity4,
	"i8":     texture.Intensity8,
	"ia4":    texture.IntensityA4,
	"ia8":    texture.IntensityA8,
	"rgb565": texture.Rgb565,
	"rgb5a3": texture.Rgb5a3,
	"argb":   texture.Argb8888,
	"index4": texture.Index4,
	"index8": texture.Index8,
	"dxt1":   texture.Dxt1,
}

var pixelFormats = map[string]texture.PixelFormat{
	"ia8":    texture.PixelIntensityA8,
	"rgb565": texture.PixelRgb565,
	"rgb5a3": texture.PixelRgb5a3,
}

func newEncoder(c *cli.Context) (*texture.Encoder, error) {
	format, ok := dataFormats[strings.ToLower(c.String("format"))]
	if !ok {
		return nil, fmt.Errorf("unknown data format \"%s\"", c.String("format"))
	}

	if format == texture.Index4 || format == texture.Index8 {
		pixel, ok := pixelFormats[strings.ToLower(c.String("palette-format"))]
		if !ok {
			return nil, fmt.Errorf("unknown palette format \"%s\"", c.String("palette-format"))
		}
		if c.Bool("gbix") {
			return texture.NewGbixPalettizedEncoder(pixel, format)
		}
		return texture.NewGcixPalettizedEncoder(pixel, format)
	}

	if c.Bool("gbix") {
		return texture.NewGbixEncoder(format)
	}
	return texture.NewGcixEncoder(format)
}

func encode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	e, err := newEncoder(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if c.Bool("mipmaps") {
		if err := e.EnableMipmaps(); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	e.SetGlobalIndex(uint32(c.Uint("global-index")))

	in := c.Args().First()
	f, err := os.Open(in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	m, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".gvr"
	}

	w, err := os.Create(out)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer w.Close()

	if err := e.Encode(w, m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func decode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	in := c.Args().First()

	d, err := texture.NewDecoderFile(in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := d.Decode(); err != nil {
		return cli.NewExitError(err, 1)
	}

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".png"
	}

	if err := d.Save(out); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	config, err := texture.DecodeConfig(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Printf("%dx%d %s", config.Width, config.Height, config.DataFormat)
	if config.Palettized {
		fmt.Printf(" (%s palette)", config.PixelFormat)
	}
	if config.Mipmaps {
		fmt.Print(" +mipmaps")
	}
	fmt.Printf(" index %d\n", config.GlobalIndex)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "gvrtool"
	app.Usage = "GVR texture management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GVR_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to texture database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode an image into a GVR texture",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "rgb5a3",
					Usage:   "data format (i4, i8, ia4, ia8, rgb565, rgb5a3, argb, index4, index8, dxt1)",
				},
				&cli.StringFlag{
					Name:    "palette-format",
					Aliases: []string{"p"},
					Value:   "rgb5a3",
					Usage:   "palette entry format for index4/index8 (ia8, rgb565, rgb5a3)",
				},
				&cli.BoolFlag{
					Name:    "mipmaps",
					Aliases: []string{"m"},
					Usage:   "generate mipmaps",
				},
				&cli.UintFlag{
					Name:    "global-index",
					Aliases: []string{"g"},
					Usage:   "global index to store in the header",
				},
				&cli.BoolFlag{
					Name:  "gbix",
					Usage: "use the GBIX magic instead of GCIX",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file",
				},
			},
			Action: encode,
		},
		{
			Name:        "decode",
			Usage:       "Decode a GVR texture into an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file",
				},
			},
			Action: decode,
		},
		{
			Name:        "info",
			Usage:       "Print the header of a GVR texture",
			Description: "",
			ArgsUsage:   "FILE",
			Action:      info,
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalogue textures",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
				}

				g, err := gvr.New(c.String("db"), logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer g.Close()

				if err := g.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
