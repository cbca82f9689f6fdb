// Package executor issues live-search requests to the provider's chat
// completions endpoint. Each call applies a per-attempt timeout and retries
// transient failures (HTTP 5xx, 429, timeouts, transport errors) with capped
// exponential backoff. A rate limiter paces outbound attempts and a circuit
// breaker fails fast once the provider has failed repeatedly.
//
// The main entry point is [Executor.Execute]; failures are reported as
// [*APIError], [*TimeoutError], [*NetworkError] or [ErrCircuitOpen].
package executor
