// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger. Every request is
// logged with its method, path, query, headers and (for JSON requests) body,
// after scrubbing secrets and obvious PII:
//
//   - Sensitive headers (Authorization, Cookie, Set-Cookie, plus custom) are
//     replaced with "[REDACTED]".
//   - JSON body fields named like secrets ("token" and any configured extras)
//     are replaced with "[REDACTED]" at any depth.
//   - Emails, phone numbers and UUIDs in the query string and header values
//     are replaced with typed placeholders.
//
// The middleware also stores a request-scoped zerolog.Logger in the Gin
// context so handlers can log with the same correlation fields (LoggerFrom).
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders:  []string{"X-Api-Key"},
//	    LogBody:      true,
//	    MaxBodyBytes: 4096,
//	}))
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const redacted = "[REDACTED]"

// RedactOptions configures RedactingLogger.
type RedactOptions struct {
	// MaskHeaders lists extra header names (case-insensitive) to mask, merged
	// with Authorization, Cookie and Set-Cookie.
	MaskHeaders []string
	// MaskFields lists extra JSON body field names (case-insensitive) to mask,
	// merged with "token".
	MaskFields []string
	// LogBody enables logging of JSON request bodies.
	LogBody bool
	// MaxBodyBytes caps the logged body text; <= 0 means no cap.
	MaxBodyBytes int
}

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits-only phone pattern (prevents matching hex characters from UUIDs).
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// scrub redacts PII patterns. UUIDs go first so the phone pattern cannot
// match their digit groups.
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

func lowerSet(base []string, extra []string) map[string]struct{} {
	m := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range append(append([]string(nil), base...), extra...) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			m[s] = struct{}{}
		}
	}
	return m
}

// RedactingLogger returns a Gin middleware that logs each request once it
// completes: INFO for 2xx/3xx, WARN for 4xx, ERROR for 5xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := lowerSet([]string{"authorization", "cookie", "set-cookie"}, opts.MaskHeaders)
	maskFields := lowerSet([]string{"token"}, opts.MaskFields)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = redacted
				continue
			}
			safeHeaders[k] = scrub(strings.Join(vv, ", "))
		}

		var body string
		if opts.LogBody {
			body = captureBody(c, maskFields, opts.MaxBodyBytes)
		}

		l := log.With().
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Logger()
		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		if body != "" {
			ev = ev.Str("body", body)
		}

		ev.
			Str("query", truncate(scrub(c.Request.URL.RawQuery), maxQueryLogLength)).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}

// captureBody reads the JSON request body, restores it for the handler, and
// returns a masked rendering for the log. Non-JSON and empty bodies are
// skipped; invalid JSON is summarized by size only.
func captureBody(c *gin.Context, maskFields map[string]struct{}, max int) string {
	if c.Request.Body == nil || !strings.Contains(c.ContentType(), "json") {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		// Keep the read error (e.g. body too large) visible to the handler.
		c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), errReader{err}))
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "[unparsed " + strconv.Itoa(len(raw)) + " bytes]"
	}
	out, err := json.Marshal(maskJSON(v, maskFields))
	if err != nil {
		return ""
	}
	return truncate(string(out), max)
}

// maskJSON replaces the values of masked object keys at any depth.
func maskJSON(v any, fields map[string]struct{}) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if _, ok := fields[strings.ToLower(k)]; ok {
				t[k] = redacted
				continue
			}
			t[k] = maskJSON(child, fields)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = maskJSON(child, fields)
		}
		return t
	default:
		return v
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
