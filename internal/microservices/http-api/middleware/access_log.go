package middleware

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const redacted = "REDACTED"

// AccessLogger is gin's request logger with credentials stripped from the logged query.
// A nil out writes to gin.DefaultWriter.
func AccessLogger(out io.Writer) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: accessLogFormatter,
		Output:    out,
	})
}

func accessLogFormatter(p gin.LogFormatterParams) string {
	if p.Latency > time.Minute {
		p.Latency = p.Latency.Truncate(time.Second)
	}
	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v\n%s",
		p.TimeStamp.Format("2006/01/02 - 15:04:05"),
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		p.Method,
		RedactQuery(p.Path),
		p.ErrorMessage,
	)
}

// RedactQuery replaces the value of access_token in a logged path.
func RedactQuery(path string) string {
	base, rawQuery, found := strings.Cut(path, "?")
	if !found || !strings.Contains(rawQuery, AccessTokenParam) {
		return path
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		// unparseable queries are dropped rather than logged
		return base + "?" + redacted
	}
	if _, ok := query[AccessTokenParam]; !ok {
		return path
	}
	query.Set(AccessTokenParam, redacted)
	return base + "?" + query.Encode()
}
