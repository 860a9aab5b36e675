// Package parser turns raw command lines into typed, validated commands.
package parser

import (
	"strings"

	"budgetbuddy/internal/parsererror"
)

// Marker is a literal field prefix such as "c/".
type Marker struct {
	Token string
	// Name is used in error messages, e.g. "category".
	Name string
	// Optional markers may be absent from the input.
	Optional bool
	// AllowBlank accepts a present marker with nothing after it.
	AllowBlank bool
}

// Layout describes one command's argument text: an optional leading field
// followed by markers in a fixed left-to-right order.
type Layout struct {
	Command string
	Usage   string
	// Leading names the field before the first marker. Empty means the
	// command takes no leading text.
	Leading         string
	LeadingOptional bool
	Markers         []Marker
}

// Fields holds the trimmed values extracted by Layout.Split.
type Fields struct {
	Leading string
	values  map[string]string
}

// Has reports whether the marker was present in the input.
func (f Fields) Has(token string) bool {
	_, ok := f.values[token]
	return ok
}

// Get returns the marker's value, or "" when absent.
func (f Fields) Get(token string) string {
	return f.values[token]
}

type markerHit struct {
	marker Marker
	pos    int
}

// Split locates every marker's first occurrence in args and slices the text
// between consecutive markers. Missing required markers are reported
// together, then ordering, then blank fields.
func (l Layout) Split(args string) (Fields, error) {
	var (
		hits    []markerHit
		missing []string
	)
	for _, m := range l.Markers {
		pos := strings.Index(args, m.Token)
		if pos < 0 {
			if !m.Optional {
				missing = append(missing, m.Token)
			}
			continue
		}
		hits = append(hits, markerHit{marker: m, pos: pos})
	}
	if len(missing) > 0 {
		return Fields{}, &parsererror.MissingMarkersError{Command: l.Command, Markers: missing}
	}

	// hits are in layout order; each must start after the previous one, which
	// also leaves them sorted by position.
	for i := 1; i < len(hits); i++ {
		if hits[i].pos < hits[i-1].pos {
			return Fields{}, &parsererror.MarkerOrderError{
				Command: l.Command,
				First:   hits[i-1].marker.Token,
				Second:  hits[i].marker.Token,
			}
		}
	}

	fields := Fields{values: make(map[string]string, len(hits))}
	leadingEnd := len(args)
	if len(hits) > 0 {
		leadingEnd = hits[0].pos
	}
	fields.Leading = strings.TrimSpace(args[:leadingEnd])

	if l.Leading == "" && fields.Leading != "" {
		reason := "unexpected text '" + fields.Leading + "'"
		if len(hits) > 0 {
			reason += " before " + hits[0].marker.Token
		}
		return Fields{}, &parsererror.ValidationError{Command: l.Command, Reason: reason, Usage: l.Usage}
	}

	var blank []string
	if l.Leading != "" && !l.LeadingOptional && fields.Leading == "" {
		blank = append(blank, l.Leading)
	}
	for i, h := range hits {
		start := h.pos + len(h.marker.Token)
		end := len(args)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		value := strings.TrimSpace(args[start:end])
		fields.values[h.marker.Token] = value
		if value == "" && !h.marker.AllowBlank {
			blank = append(blank, h.marker.Name+" ("+h.marker.Token+")")
		}
	}
	if len(blank) > 0 {
		return Fields{}, &parsererror.EmptyFieldsError{Command: l.Command, Fields: blank}
	}

	return fields, nil
}
