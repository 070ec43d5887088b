// Package logging configures the global zerolog logger and the gin request logger.
package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level and replaces the global logger with a JSON logger
// tagged with service. Unknown levels fall back to info.
func Init(level, service string) {
	InitWithWriter(os.Stdout, level, service)
}

func InitWithWriter(w io.Writer, level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	log.Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
}

// RequestLogger logs one line per request. Client IPs are hashed.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		} else if status >= 400 {
			evt = log.Warn()
		}

		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration_ms", time.Since(start)).
			Str("ip_hash", hashIP(c.ClientIP())).
			Int("bytes_sent", c.Writer.Size()).
			Msg("request")
	}
}

func hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])[:12]
}
