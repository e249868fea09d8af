// Package figma implements the node fetcher for the Figma REST API.
//
// The fetcher retrieves design nodes in batches: directives are grouped
// by file key upstream, and each group becomes a single GET
// /v1/files/{key}/nodes call naming every node id for that file. Groups
// are fetched concurrently with a bounded worker count.
//
// # Architecture
//
// The package follows the driven port pattern defined in
// [driven.NodeFetcher]. It comprises the following components:
//
//   - Client: handles API communication, retries and error mapping
//   - Config: fetch tuning (concurrency, retries, backoff)
//   - RateLimiter: proactive token-bucket throttling
//
// # Authentication
//
// Requests authenticate with a personal access token sent in the
// X-Figma-Token header. Tokens are created under Figma account
// settings and need file read access for every tracked file.
//
// # Rate Limiting
//
// Two strategies cooperate:
//
//  1. Proactive throttling: a token bucket paces outgoing requests so
//     bursts of grouped fetches stay under the API's per-minute quota.
//
//  2. Reactive backoff: a 429 response is retried after the wait the
//     server names in Retry-After, or with exponential backoff when no
//     hint is present. Waits beyond the configured ceiling abort the
//     run instead of blocking it for hours.
//
// # Error Handling
//
// Every failure maps onto the closed error taxonomy in
// [domain.APIError]: invalid requests to validation, 401/403 to
// authentication, 404 and absent node ids to not-found, 5xx to server,
// transport failures to network errors wrapping their cause. Only
// rate-limit and network errors are retryable.
//
// The package never logs tokens or fetched node payloads; log lines
// carry file keys, node counts and wait durations only.
package figma
