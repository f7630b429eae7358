package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"grana/internal/core"
)

// maxBodySize bounds request bodies; every payload here is a small JSON
// document.
const maxBodySize = 1 << 20

// clientIP resolves the caller's address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	return r.RemoteAddr
}

// decodeJSON decodes the request body into dst. On failure it writes a 400
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		BadRequestError("invalid JSON body: " + err.Error()).Write(w)
		return false
	}
	return true
}

// parseFilters reads the transaction listing filters from the query string.
// Dates accept date-only (2006-01-02) or RFC 3339 values.
func parseFilters(q url.Values) (core.Filters, error) {
	var f core.Filters

	switch t := q.Get("type"); t {
	case "":
	case string(core.Income):
		f.Type = core.Income
	case string(core.Expense):
		f.Type = core.Expense
	default:
		return core.Filters{}, fmt.Errorf("invalid type %q: must be income or expense", t)
	}

	f.WalletID = q.Get("walletId")
	f.UserID = q.Get("userId")

	if v := q.Get("from"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return core.Filters{}, fmt.Errorf("invalid from date %q", v)
		}
		f.StartDate = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return core.Filters{}, fmt.Errorf("invalid to date %q", v)
		}
		f.EndDate = &d
	}
	return f, nil
}

func parseDate(v string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", v); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, v); err == nil {
		return d, nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}
