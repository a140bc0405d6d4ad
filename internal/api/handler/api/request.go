// internal/api/handler/api/request.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/newthinker/journal/internal/core"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into v, rejecting unknown fields
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return core.WrapError(core.ErrInvalidRequest, errors.New("empty request body"))
		}
		return core.WrapError(core.ErrInvalidRequest, err)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(core.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, core.Errorf(core.ErrInvalidRequest, "invalid date %q", s)
	}
	return t, nil
}

// queryInt returns the integer query parameter name, def when absent
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, core.Errorf(core.ErrInvalidRequest, "%s must be an integer between %d and %d", name, min, max)
	}
	return n, nil
}
