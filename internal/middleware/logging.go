package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/fitnessdash/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs every request at trace level once it is served, with its status and duration.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !log.IsLevelEnabled(log.TraceLevel) {
				next.ServeHTTP(w, r)
				return
			}

			begin := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)

			fields := log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   resp.statusCode,
				"duration": time.Since(begin).String(),
				"ua":       r.Header.Get("User-Agent"),
			}
			if ip, err := pkg.ReadUserIP(r); err == nil {
				fields["ip"] = ip
			}
			log.WithFields(fields).Trace("request served")
		})
	}
}
