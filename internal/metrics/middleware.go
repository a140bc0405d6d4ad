package metrics

import (
	"net/http"
	"time"
)

// unmatchedRoute labels requests no mux pattern claimed, so scans of random
// paths collapse into one series.
const unmatchedRoute = "unmatched"

// statusRecorder remembers the first status code sent downstream. A body
// written without an explicit header counts as 200.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// HTTPMiddleware counts and times every request on reg, keyed by method,
// route pattern and status class.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			began := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			reg.RecordRequest(r.Method, routeLabel(r), rec.status, time.Since(began).Seconds())
		})
	}
}

// routeLabel reads the pattern ServeMux stored on r while routing it, which
// keeps path parameters such as account IDs out of the label set.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}
