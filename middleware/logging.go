package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/akinalp/kushauth/pkg"
	"github.com/akinalp/kushauth/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

var httpLog = logrus.WithField("component", "http")

// statusRecorder, handler'ın yazdığı status code'u yakalar.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.status = http.StatusOK
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

// Unwrap, http.ResponseController'ın alttaki writer'a ulaşması için.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Logging, her request için tek bir log satırı yazar.
// Body ve header'lar loglanmaz (şifre, token).
func Logging(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			httpLog.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
				"ip":       ratelimit.ExtractIP(r, trustProxy),
			}).Info("request")
		})
	}
}

// Recover, handler'daki panic'i yakalar ve generic 500 döner.
// Stack trace sadece log'a gider.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				httpLog.WithFields(logrus.Fields{
					"panic": rec,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("handler panicked")
				pkg.ErrorWithMessage(w, http.StatusInternalServerError, pkg.GenericErrorMessage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
