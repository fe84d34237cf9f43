package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/skhartaye/SMOKI/internal/logger"
)

// RequestLogger logs method, path and duration for every request. Frame
// uploads and MJPEG polls arrive many times per second and are skipped to keep
// the log readable.
func RequestLogger(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			if strings.HasSuffix(r.URL.Path, "/frame") || strings.HasSuffix(r.URL.Path, "/stream.mjpeg") {
				return
			}
			logger.Info("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
		})
	}
}
