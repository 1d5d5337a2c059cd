// Package report renders merged aggregates as
// {key=min/mean/max, key=min/mean/max, ...}.
package report

import (
	"slices"
	"strings"

	"github.com/andreyvit/diff"
	"golang.org/x/exp/maps"

	"github.com/warpstreamlabs/stationstats/internal/fixed"
	"github.com/warpstreamlabs/stationstats/internal/stats"
)

const entrySep = ", "

// Format returns g with keys in ascending byte order.
func Format(g stats.Global) string {
	// key + "=-99.9/-99.9/-99.9" + ", "
	size := 2
	for k := range g {
		size += len(k) + 20
	}
	return string(Append(make([]byte, 0, size), g))
}

// Append is Format writing into dst.
func Append(dst []byte, g stats.Global) []byte {
	keys := maps.Keys(g)
	slices.Sort(keys)

	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, entrySep...)
		}
		a := g[k]
		dst = append(dst, k...)
		dst = append(dst, '=')
		dst = fixed.Append(dst, a.Min)
		dst = append(dst, '/')
		dst = fixed.Append(dst, a.Mean())
		dst = append(dst, '/')
		dst = fixed.Append(dst, a.Max)
	}
	return append(dst, '}')
}

// Diff compares two formatted results entry by entry and returns a line
// diff, or "" when they are equal. Surrounding whitespace is ignored.
func Diff(expected, actual string) string {
	expected, actual = strings.TrimSpace(expected), strings.TrimSpace(actual)
	if expected == actual {
		return ""
	}
	return diff.LineDiff(
		diff.TrimLinesInString(entryLines(expected)),
		diff.TrimLinesInString(entryLines(actual)))
}

func entryLines(s string) string {
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return strings.ReplaceAll(s, entrySep, "\n")
}
