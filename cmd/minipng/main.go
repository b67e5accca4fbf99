package main

import (
	"bytes"
	"fmt"
	goimage "image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bodgit/minipng"
	"github.com/bodgit/minipng/image"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const defaultDB = "minipng.db"

var pixelTypes = map[string]image.PixelType{
	"bw":      image.BlackAndWhite,
	"gray":    image.GrayLevels,
	"palette": image.Palette,
	"rgb":     image.RGB,
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func pixelTypeNames() string {
	names := make([]string, 0, len(pixelTypes))
	for name := range pixelTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func decodeFile(file string) (*image.Image, error) {
	b, err := minipng.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := image.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return m, nil
}

func display(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	for _, file := range c.Args().Slice() {
		m, err := decodeFile(file)
		if err != nil {
			return cli.Exit(err, 1)
		}

		if c.Bool("sixel") {
			if err := image.RenderSixel(c.App.Writer, m); err != nil {
				return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
			}
			continue
		}

		s, err := image.Render(m)
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}
		fmt.Fprintln(c.App.Writer, s)
	}

	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	b, err := minipng.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	m, err := image.FromText(string(b))
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", c.Args().First(), err), 1)
	}
	m.Comments = c.StringSlice("comment")

	if err := minipng.WriteFile(c.String("output"), image.Encode(m)); err != nil {
		return cli.Exit(err, 1)
	}

	newLogger(c).Printf("Encoded %dx%d image to \"%s\"\n", m.Width, m.Height, c.String("output"))

	return nil
}

func importImage(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	pt, ok := pixelTypes[c.String("type")]
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown pixel type %q, expected one of %s", c.String("type"), pixelTypeNames()), 1)
	}

	b, err := minipng.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	src, format, err := goimage.Decode(bytes.NewReader(b))
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", c.Args().First(), err), 1)
	}

	m, err := image.FromImage(src, pt)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", c.Args().First(), err), 1)
	}
	m.Comments = c.StringSlice("comment")

	if err := minipng.WriteFile(c.String("output"), image.Encode(m)); err != nil {
		return cli.Exit(err, 1)
	}

	newLogger(c).Printf("Imported %s image \"%s\" as %s\n", format, c.Args().First(), m.PixelType)

	return nil
}

func export(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := decodeFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	img, err := image.ToImage(m)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", c.Args().First(), err), 1)
	}

	b := new(bytes.Buffer)
	if err := png.Encode(b, img); err != nil {
		return cli.Exit(err, 1)
	}

	if err := minipng.WriteFile(c.String("output"), b.Bytes()); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func withCatalog(f func(*cli.Context, *minipng.MiniPNG) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		catalog, err := minipng.NewCatalog(c.String("db"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer catalog.Close()

		return f(c, minipng.New(catalog, newLogger(c)))
	}
}

func scan(c *cli.Context, m *minipng.MiniPNG) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	if err := m.Scan(c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func list(c *cli.Context, m *minipng.MiniPNG) error {
	entries, err := m.List()
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, e := range entries {
		fmt.Fprintf(c.App.Writer, "%d\t%s\t%dx%d\t%s\t%s\n", e.ID, e.Digest, e.Header.Width, e.Header.Height, e.Header.PixelType, e.Path)
		for _, comment := range e.Comments {
			fmt.Fprintf(c.App.Writer, "\t- %s\n", comment)
		}
	}

	return nil
}

func extract(c *cli.Context, m *minipng.MiniPNG) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit(fmt.Errorf("invalid image ID %q", c.Args().First()), 1)
	}

	if err := m.Extract(id, c.String("output")); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "write to `FILE`",
		Required: true,
	}
}

func commentFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "comment",
		Aliases: []string{"c"},
		Usage:   "add a comment block, may be repeated",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "minipng"
	app.Usage = "Mini-PNG image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MINIPNG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "display",
			Usage:     "Display Mini-PNG images",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "sixel",
					Usage: "draw the pixels using sixel graphics",
				},
			},
			Action: display,
		},
		{
			Name:        "encode",
			Usage:       "Encode ASCII art as a black and white Mini-PNG image",
			Description: "Each line of the input is a row of pixels, ' ' is black and 'X' is white.",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{outputFlag(), commentFlag()},
			Action:      encode,
		},
		{
			Name:      "import",
			Usage:     "Convert a GIF, JPEG, PNG, BMP, TIFF or WebP image to Mini-PNG",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				outputFlag(),
				commentFlag(),
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "palette",
					Usage:   "pixel type, one of " + pixelTypeNames(),
				},
			},
			Action: importImage,
		},
		{
			Name:      "export",
			Usage:     "Convert a Mini-PNG image to PNG",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{outputFlag()},
			Action:    export,
		},
		{
			Name:      "scan",
			Usage:     "Scan a directory and add any Mini-PNG images to the catalog",
			ArgsUsage: "DIRECTORY",
			Action:    withCatalog(scan),
		},
		{
			Name:   "list",
			Usage:  "List the images in the catalog",
			Action: withCatalog(list),
		},
		{
			Name:      "extract",
			Usage:     "Write an image from the catalog to a file",
			ArgsUsage: "ID",
			Flags:     []cli.Flag{outputFlag()},
			Action:    withCatalog(extract),
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
