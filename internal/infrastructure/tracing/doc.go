/*
Package tracing records lightweight spans for requests and the work they fan
out to.

Each HTTP request gets a root span whose trace ID is the request ID, so a
span and the request's log lines can be joined. Rendering a dashboard opens
one child span per widget and each feed fetch opens a child of that, which
shows which feed made a slow page slow.

	tracer := tracing.New("dashboard", logger)
	defer tracer.Close()

	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer, middleware.GetRequestID))

	span, ctx := tracer.StartSpan(ctx, "feed.fetch")
	span.SetTag("feed.url", url)
	feed, err := fetch(ctx, url)
	tracer.End(span, err)

Finished spans are queued on a buffered channel and logged by a collector
goroutine (debug level, warn when the span carries an error). A nil *Tracer
is valid everywhere and records nothing.
*/
package tracing
