package genuine

import (
	"log"
	"time"
)

// RequestInfo is a middleware giving basic request / response stats
func RequestInfo(ctx Context) error {
	start := time.Now()

	defer func() {
		log.Printf("%s %q -> %d [%s]",
			ctx.Request().Method(), ctx.Request().Path(), ctx.Response().Status(), time.Since(start))
	}()

	return ctx.Next()
}
