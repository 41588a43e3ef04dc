package main

// pprof behind a random key logged at startup. pprof has no authentication
// of its own, but probing live instances is too useful to leave out
// entirely, so the mount point is unguessable instead.

import (
	"encoding/base64"
	"fmt"
	"log"
	"math/rand"
	"net/http/pprof"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var pprofHandlers = map[string]fasthttp.RequestHandler{
	"":              fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Index),
	"/cmdline":      fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Cmdline),
	"/profile":      fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Profile),
	"/symbol":       fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Symbol),
	"/trace":        fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Trace),
	"/allocs":       fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Handler("allocs").ServeHTTP),
	"/block":        fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Handler("block").ServeHTTP),
	"/goroutine":    fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Handler("goroutine").ServeHTTP),
	"/heap":         fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Handler("heap").ServeHTTP),
	"/mutex":        fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Handler("mutex").ServeHTTP),
	"/threadcreate": fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Handler("threadcreate").ServeHTTP),
}

func pprofNew() fiber.Handler {
	key := base64.URLEncoding.EncodeToString([]byte(fmt.Sprintf("%d", rand.Int63())))
	pfx := fmt.Sprintf("/%s/debug/pprof", key)
	log.Printf("pprof available at %s", pfx)

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !strings.HasPrefix(path, pfx) {
			return c.Next()
		}

		h, ok := pprofHandlers[strings.TrimSuffix(strings.TrimPrefix(path, pfx), "/")]
		if !ok {
			return c.Redirect(pfx+"/", fiber.StatusFound)
		}

		h(c.Context())
		return nil
	}
}
