package catalog

import (
	"iter"
	"slices"
	"strings"
)

// DefaultRoutePrefix is the path under which content pages live.
const DefaultRoutePrefix = "/bukhari"

// Slugs yields the canonical slug of every resolvable entry in index order.
// The sequence is lazy and may be ranged over more than once.
func Slugs(entries []Entry) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range entries {
			slug, ok := e.Slug()
			if !ok {
				continue
			}
			if !yield(slug) {
				return
			}
		}
	}
}

// RoutePaths yields prefix + "/" + slug for every resolvable entry.
func RoutePaths(entries []Entry, prefix string) iter.Seq[string] {
	prefix = strings.TrimRight(prefix, "/")
	return func(yield func(string) bool) {
		for slug := range Slugs(entries) {
			if !yield(prefix + "/" + slug) {
				return
			}
		}
	}
}

// Routes collects RoutePaths. An empty prefix means DefaultRoutePrefix.
func Routes(entries []Entry, prefix string) []string {
	if prefix == "" {
		prefix = DefaultRoutePrefix
	}
	routes := slices.Collect(RoutePaths(entries, prefix))
	if routes == nil {
		routes = []string{}
	}
	return routes
}
