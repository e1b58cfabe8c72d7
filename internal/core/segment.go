package core

import (
	"sort"
	"strings"
)

// Field markers recognised inside todo, deadline and event commands.
const (
	markerBy   = "/by"
	markerFrom = "/from"
	markerTo   = "/to"
	markerNote = "/n"
)

// segments is a command body cut at its markers. head is the text before the
// first marker; values maps each marker found to the text that follows it up
// to the next marker. All text is trimmed.
type segments struct {
	head   string
	values map[string]string
}

func (s segments) has(marker string) bool {
	_, ok := s.values[marker]
	return ok
}

func (s segments) get(marker string) string {
	return s.values[marker]
}

// segment cuts body at the leftmost occurrence of each marker. Markers are
// plain substrings with no quoting, so user text that contains one (say a
// description mentioning "/to") is cut there too. Every marker starts with '/'
// and contains no other '/', so two occurrences never overlap.
func segment(body string, markers ...string) segments {
	type hit struct {
		marker string
		pos    int
	}

	var hits []hit
	for _, m := range markers {
		if i := strings.Index(body, m); i >= 0 {
			hits = append(hits, hit{marker: m, pos: i})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].pos < hits[j].pos
	})

	out := segments{values: make(map[string]string, len(hits))}
	if len(hits) == 0 {
		out.head = strings.TrimSpace(body)
		return out
	}

	out.head = strings.TrimSpace(body[:hits[0].pos])
	for i, h := range hits {
		start := h.pos + len(h.marker)
		end := len(body)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		if start > end {
			start = end
		}
		out.values[h.marker] = strings.TrimSpace(body[start:end])
	}
	return out
}
