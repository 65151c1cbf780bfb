package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs every request once it has been handled.
func RequestLogger(c *gin.Context) {
	start := time.Now()

	c.Next()

	status := c.Writer.Status()

	var evt *zerolog.Event
	switch {
	case status >= 500:
		evt = log.Error()
	case status >= 400:
		evt = log.Warn()
	default:
		evt = log.Info()
	}

	evt.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("request")
}
