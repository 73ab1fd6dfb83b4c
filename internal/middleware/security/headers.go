// Package security sets response headers that harden the JSON API
// against content sniffing and framing.
package security

import "net/http"

// HeadersConfig holds the header values applied to every response.
type HeadersConfig struct {
	XContentTypeOptions string
	XFrameOptions       string
	ReferrerPolicy      string
	CacheControl        string
}

// DefaultHeadersConfig returns values suited to an API that serves
// only JSON: responses are never framed and never cached by shared
// proxies.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		XContentTypeOptions: "nosniff",
		XFrameOptions:       "DENY",
		ReferrerPolicy:      "no-referrer",
		CacheControl:        "no-store",
	}
}

// Headers wraps next and applies cfg's headers before the handler
// writes its own.
func Headers(cfg HeadersConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if cfg.XContentTypeOptions != "" {
			h.Set("X-Content-Type-Options", cfg.XContentTypeOptions)
		}
		if cfg.XFrameOptions != "" {
			h.Set("X-Frame-Options", cfg.XFrameOptions)
		}
		if cfg.ReferrerPolicy != "" {
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)
		}
		if cfg.CacheControl != "" {
			h.Set("Cache-Control", cfg.CacheControl)
		}
		next.ServeHTTP(w, r)
	})
}
