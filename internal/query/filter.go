package query

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned by Normalize when start/end cannot be parsed.
// Unlike page/size, a bad date is not coerced: dropping the filter would
// silently return unfiltered data.
var ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD or a full timestamp")

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Params are the raw, untrusted list query parameters as they arrive
// from the HTTP layer.
type Params struct {
	Page     string
	PageSize string
	Keyword  string
	Start    string
	End      string
}

// Filter is the canonical descriptor shared by both query builders.
// Nil time bounds and an empty keyword mean "no constraint". Owner is
// never taken from Params; the service sets it after normalization.
type Filter struct {
	Keyword  string
	Owner    string
	StartAt  *time.Time
	EndAt    *time.Time
	Page     int
	PageSize int
}

// Offset is the number of rows to skip for the requested page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Normalize validates and converts raw parameters into a Filter.
// page and pageSize degrade to safe defaults (page 1, size 10, size
// clamped to [1,100]); the keyword passes through unescaped (escaping
// is the builders' job); date-only inputs expand to inclusive day
// boundaries in UTC.
func Normalize(p Params) (Filter, error) {
	f := Filter{
		Keyword:  strings.TrimSpace(p.Keyword),
		Page:     1,
		PageSize: defaultPageSize,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(p.Page)); err == nil && n >= 1 {
		f.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(p.PageSize)); err == nil && n >= 1 {
		f.PageSize = n
		if f.PageSize > maxPageSize {
			f.PageSize = maxPageSize
		}
	}

	start, err := parseBound(p.Start, false)
	if err != nil {
		return Filter{}, err
	}
	f.StartAt = start

	end, err := parseBound(p.End, true)
	if err != nil {
		return Filter{}, err
	}
	f.EndAt = end

	return f, nil
}

// parseBound parses one time bound. A 10-char calendar date expands to
// 00:00:00 of that day, or 23:59:59.999 when it is the end bound.
func parseBound(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if len(s) == 10 {
		d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if endOfDay {
			d = d.Add(24*time.Hour - time.Millisecond)
		}
		return &d, nil
	}

	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}
