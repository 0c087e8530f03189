/*
Package resilience guards calls to flaky upstreams with a circuit breaker.

The feed client wraps every request to the feed-to-JSON endpoint in a
Breaker. After enough consecutive failures the breaker opens and widgets get
an immediate error card instead of each waiting out a timeout; once Timeout
has passed a limited number of probe calls are let through.

	breaker := resilience.New("feed-endpoint", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	feed, err := resilience.Do(ctx, breaker, func(ctx context.Context) (*Feed, error) {
		return client.fetch(ctx, url)
	})

Context cancellation never counts as a failure unless Settings.IsFailure
says so; a client that disconnects mid-render does not trip the breaker.

State transitions:

	Closed --[ReadyToTrip]--> Open --[Timeout]--> HalfOpen --[MaxRequests successes]--> Closed
	                                                 |
	                                             [failure] --> Open
*/
package resilience
