// Package server provides HTTP routing, middleware, and the request handlers
// for the song request service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method-qualified patterns.
//
// Built-in middleware covers request logging, Prometheus metrics, and a
// token-bucket rate limit; [MetricsHandler] exposes the scrape endpoint.
//
// # Token Gateway
//
// [TokenHandler] performs the server side of the OAuth2 authorization code
// exchange. The browser never sees the client secret: it sends the code to
// GET /api/spotify/token and the gateway forwards the provider's response
// verbatim, success or error.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow used
// by the CLI login command. The handler validates the state parameter (CSRF
// protection), exchanges the authorization code for tokens, and sends the
// result through a channel. It only processes one callback to prevent replay
// attacks.
//
// # Session API
//
// [APIHandler] serves wallet, song request, DJ, and catalog search endpoints.
// Each caller gets a per-user session holding their wallet ledger and request
// book; callers are identified by the X-User-ID header with a configured
// default for single-user deployments.
package server
