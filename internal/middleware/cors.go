package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin represents an allowed origin pattern of the form
// "https://*.example.com" where the wildcard matches exactly one
// subdomain label.
type wildcardOrigin struct {
	scheme string // "https://" or "http://"
	suffix string // ".example.com"
}

// parseWildcardOrigin parses a wildcard origin pattern. Returns nil if the
// pattern is not a valid single-label wildcard (exact origins and bare "*"
// are handled separately).
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	host := strings.TrimPrefix(pattern, scheme)
	if !strings.HasPrefix(host, "*.") {
		return nil
	}

	suffix := host[1:] // includes the leading dot
	// Only one wildcard allowed, and the suffix must be a real domain
	// (at least two labels after the wildcard).
	if strings.Contains(suffix, "*") {
		return nil
	}
	if strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether origin matches this wildcard pattern.
// The wildcard covers exactly one subdomain label.
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := strings.TrimPrefix(origin, w.scheme)
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	label := strings.TrimSuffix(host, w.suffix)
	if label == "" || strings.Contains(label, ".") || strings.Contains(label, "/") {
		return false
	}
	return true
}

// CORS middleware to handle cross-origin requests
// Reads CORS_ALLOWED_ORIGINS environment variable to restrict origins.
// Entries may be exact origins or single-label wildcards like
// "https://*.pulse-app.pages.dev". If not set, defaults to "*" (allow all).
func CORS() gin.HandlerFunc {
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	var exactOrigins []string
	var wildcards []*wildcardOrigin
	if !allowAll {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			origin = strings.TrimSpace(origin)
			if w := parseWildcardOrigin(origin); w != nil {
				wildcards = append(wildcards, w)
			} else {
				exactOrigins = append(exactOrigins, origin)
			}
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			allowed := false
			for _, allowedOrigin := range exactOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed {
				for _, w := range wildcards {
					if w.matches(origin) {
						allowed = true
						break
					}
				}
			}

			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(403)
				return
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
