package tracing

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Propagation headers.
const (
	TraceIDHeader = "X-Trace-ID"
	SpanIDHeader  = "X-Span-ID"
)

// HTTPMiddleware opens one span per request. An incoming X-Trace-ID is
// continued; otherwise traceID(c) names the trace, so a request's logs and
// spans share its request ID. traceID may be nil.
func HTTPMiddleware(tracer *Tracer, traceID func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracer == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		switch {
		case c.GetHeader(TraceIDHeader) != "":
			ctx = WithTraceID(ctx, TraceID(c.GetHeader(TraceIDHeader)))
		case traceID != nil:
			ctx = WithTraceID(ctx, TraceID(traceID(c)))
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+route)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)

		c.Header(TraceIDHeader, string(span.TraceID))
		c.Header(SpanIDHeader, string(span.SpanID))

		c.Next()

		status := c.Writer.Status()
		span.SetStatus(status)
		span.SetTag("http.status", strconv.Itoa(status))
		var err error
		if len(c.Errors) > 0 {
			err = c.Errors.Last()
		}
		tracer.End(span, err)
	}
}
