package httpd

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, e.g. "localhost:7380".
	Addr string
	// Token, when set, protects the /v1 routes with bearer auth.
	Token string
	// RateLimit, when set, applies a per-IP limit in limiter notation,
	// e.g. "20-S".
	RateLimit string
}
