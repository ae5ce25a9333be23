// Package view derives the displayed row order from loaded rows.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/pkg/timeutil"
)

// Filter keeps rows whose column contains Query, case-insensitively.
// An empty Column matches against every column in Spec.Columns.
type Filter struct {
	Column string
	Query  string
}

// SortKey orders rows by one column.
type SortKey struct {
	Column string
	Desc   bool
}

// Spec is the sort and filter state of a table.
type Spec struct {
	Filters []Filter
	Sort    []SortKey
	// Columns lists the visible columns used by column-less filters.
	Columns []string
}

// Apply returns the rows matching every filter, ordered by the sort keys.
// Ties keep load order. rows is never modified.
func Apply(rows []clip.Row, spec Spec) []clip.Row {
	idx := Indices(rows, spec)
	out := make([]clip.Row, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

// Indices is Apply expressed as positions into rows, so callers can map a
// view row back to the row it was derived from.
func Indices(rows []clip.Row, spec Spec) []int {
	out := make([]int, 0, len(rows))
	for i, r := range rows {
		if spec.matches(r) {
			out = append(out, i)
		}
	}

	if len(spec.Sort) > 0 {
		kinds := make([]Kind, len(spec.Sort))
		for i, k := range spec.Sort {
			kinds[i] = ColumnKind(rows, out, k.Column)
		}
		sort.SliceStable(out, func(i, j int) bool {
			a, b := rows[out[i]], rows[out[j]]
			for n, k := range spec.Sort {
				c := Compare(kinds[n], a.Value(k.Column), b.Value(k.Column))
				if c == 0 {
					continue
				}
				if k.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	return out
}

func (s Spec) matches(r clip.Row) bool {
	for _, f := range s.Filters {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		if q == "" {
			continue
		}
		if f.Column != "" {
			if !strings.Contains(strings.ToLower(r.Value(f.Column)), q) {
				return false
			}
			continue
		}
		found := false
		for _, col := range s.Columns {
			if strings.Contains(strings.ToLower(r.Value(col)), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Kind is how the values of one column are ordered.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindTimecode
)

// ColumnKind classifies column over the rows at idx. A column is timecodes
// when every non-empty value parses as one, numbers when every non-empty
// value is numeric, and text otherwise.
func ColumnKind(rows []clip.Row, idx []int, column string) Kind {
	timecodes, numbers := true, true
	seen := false
	for _, i := range idx {
		v := rows[i].Value(column)
		if v == "" {
			continue
		}
		seen = true
		if timecodes {
			if _, err := timeutil.ToSeconds(v); err != nil {
				timecodes = false
			}
		}
		if numbers {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numbers = false
			}
		}
		if !timecodes && !numbers {
			return KindText
		}
	}
	switch {
	case !seen:
		return KindText
	case timecodes:
		return KindTimecode
	case numbers:
		return KindNumber
	}
	return KindText
}

// Compare orders two cell values of a column of the given kind. Empty sorts
// first. A value that doesn't fit kind compares as case-insensitive text.
func Compare(kind Kind, a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	switch kind {
	case KindTimecode:
		as, errA := timeutil.ToSeconds(a)
		bs, errB := timeutil.ToSeconds(b)
		if errA == nil && errB == nil {
			return cmpInt(as, bs)
		}
	case KindNumber:
		af, errA := strconv.ParseFloat(a, 64)
		bf, errB := strconv.ParseFloat(b, 64)
		if errA == nil && errB == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ParseFilter parses "column=query" or a bare query matching any column.
func ParseFilter(s string) Filter {
	if col, q, ok := strings.Cut(s, "="); ok && col != "" && !strings.ContainsAny(col, " \t") {
		return Filter{Column: col, Query: q}
	}
	return Filter{Query: s}
}

// ParseSort parses "column" or "-column" (descending).
func ParseSort(s string) SortKey {
	if strings.HasPrefix(s, "-") {
		return SortKey{Column: s[1:], Desc: true}
	}
	return SortKey{Column: s}
}

// Toggle makes column the primary sort key, flipping its direction when it
// already is the primary key.
func (s *Spec) Toggle(column string) {
	if len(s.Sort) > 0 && s.Sort[0].Column == column {
		s.Sort[0].Desc = !s.Sort[0].Desc
		return
	}
	s.Sort = []SortKey{{Column: column}}
}

// AddKey appends column as a further sort key, or flips it if already present.
func (s *Spec) AddKey(column string) {
	for i := range s.Sort {
		if s.Sort[i].Column == column {
			s.Sort[i].Desc = !s.Sort[i].Desc
			return
		}
	}
	s.Sort = append(s.Sort, SortKey{Column: column})
}

// Reverse flips every sort key. With no keys it sorts column descending.
func (s *Spec) Reverse(column string) {
	if len(s.Sort) == 0 {
		s.Sort = []SortKey{{Column: column, Desc: true}}
		return
	}
	for i := range s.Sort {
		s.Sort[i].Desc = !s.Sort[i].Desc
	}
}

// Reset clears filters and sort keys.
func (s *Spec) Reset() {
	s.Filters = nil
	s.Sort = nil
}

// Describe summarizes the sort and filter state, e.g. "sort: start_timecode↑ | filter: tackle".
func (s Spec) Describe() string {
	var parts []string
	if len(s.Sort) > 0 {
		var keys []string
		for _, k := range s.Sort {
			arrow := "↑"
			if k.Desc {
				arrow = "↓"
			}
			keys = append(keys, k.Column+arrow)
		}
		parts = append(parts, "sort: "+strings.Join(keys, ", "))
	}
	if len(s.Filters) > 0 {
		var fs []string
		for _, f := range s.Filters {
			if f.Column != "" {
				fs = append(fs, f.Column+"="+f.Query)
			} else {
				fs = append(fs, f.Query)
			}
		}
		parts = append(parts, "filter: "+strings.Join(fs, ", "))
	}
	return strings.Join(parts, " | ")
}
