package models

import (
	"net/url"
	"strconv"
	"strings"
)

// ListingFilter describes a listing search. Nil/empty fields are absent and
// never reach the query string.
type ListingFilter struct {
	// SearchTerm is sent as is; callers join several terms with spaces.
	SearchTerm    string
	MinPrice      *int64
	MaxPrice      *int64
	MinYear       *int
	MaxYear       *int
	Brands        []string
	Types         []string
	Transmissions []string
	FuelTypes     []string
	Colors        []string
}

// IsEmpty reports whether the filter has no field set.
func (f *ListingFilter) IsEmpty() bool {
	return f == nil || len(f.Query()) == 0
}

// Query encodes the present fields as query parameters. Set-valued fields
// are comma-joined.
func (f *ListingFilter) Query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}

	if f.SearchTerm != "" {
		q.Set("searchTerm", f.SearchTerm)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatInt(*f.MinPrice, 10))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatInt(*f.MaxPrice, 10))
	}
	if f.MinYear != nil {
		q.Set("minYear", strconv.Itoa(*f.MinYear))
	}
	if f.MaxYear != nil {
		q.Set("maxYear", strconv.Itoa(*f.MaxYear))
	}

	setJoined(q, "brands", f.Brands)
	setJoined(q, "types", f.Types)
	setJoined(q, "transmissions", f.Transmissions)
	setJoined(q, "fuelTypes", f.FuelTypes)
	setJoined(q, "colors", f.Colors)

	return q
}

func setJoined(q url.Values, key string, values []string) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) > 0 {
		q.Set(key, strings.Join(out, ","))
	}
}
