// Command warptextd is a preview server for tuning challenge parameters.
// It serves a freshly generated challenge image per request and an HTML page
// that displays one. Solutions are logged, never stored; this is a
// development tool, not a verification service.
package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/spf13/pflag"
	"github.com/warptext/warptext"
)

var renderer *warptext.Renderer

func main() {
	var (
		listen      string
		fontPath    string
		width       int
		height      int
		noise       float64
		lines       int
		length      int
		views       string
		reveal      bool
		enablePprof bool
	)

	pflag.StringVarP(&listen, "listen", "l", ":8080", "Listen address")
	pflag.StringVarP(&fontPath, "font", "f", "", "Path to a TTF font (built-in font if empty)")
	pflag.IntVar(&width, "width", 200, "Challenge width in pixels")
	pflag.IntVar(&height, "height", 80, "Challenge height in pixels")
	pflag.Float64VarP(&noise, "noise", "n", 0.02, "Noise level in [0,1]")
	pflag.IntVar(&lines, "lines", 1, "Number of obstruction lines")
	pflag.IntVar(&length, "length", 6, "Challenge text length")
	pflag.StringVar(&views, "views", "./views", "Directory holding HTML templates")
	pflag.BoolVar(&reveal, "reveal", false, "Expose the solution in an X-Challenge-Text header")
	pflag.BoolVar(&enablePprof, "pprof", false, "Mount pprof behind a random key")
	pflag.Parse()

	opts := []warptext.Option{
		warptext.WithSize(width, height),
		warptext.WithNoise(noise),
		warptext.WithLines(lines),
		warptext.WithTextFunc(warptext.RandomText(length, warptext.DefaultAlphabet)),
	}
	if fontPath != "" {
		opts = append(opts, warptext.WithFont(fontPath))
	}

	var err error
	renderer, err = warptext.New(opts...)
	if err != nil {
		log.Printf("bad renderer configuration: %v", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "warptextd",

		Views: html.New(views, ".html"),
	})

	if enablePprof {
		app.Use(pprofNew())
	}

	app.Get("/", getIndex)
	app.Get("/captcha.png", getCaptcha(reveal))

	log.Printf("listening on %s", listen)
	if err := app.Listen(listen); err != nil {
		log.Printf("server stopped: %v", err)
		os.Exit(1)
	}
}

func getIndex(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

func getCaptcha(reveal bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text, img, err := renderer.Bytes()
		if err != nil {
			return err
		}

		log.Printf("challenge %q served to %s", text, c.IP())

		if reveal {
			c.Set("X-Challenge-Text", text)
		}

		c.Set("Cache-Control", "no-store")
		c.Context().SetContentType("image/png")
		return c.Send(img)
	}
}
