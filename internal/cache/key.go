// file: internal/cache/key.go
// version: 1.1.0
// guid: 12ae22a6-1226-4173-a58b-294c3d0b849c

package cache

import (
	"sort"
	"strconv"
	"strings"
)

// SearchKey builds a deterministic key for a search request against catalog
// generation gen. Filters are sorted so map iteration order never changes the
// key. Empty filter values are dropped since they do not constrain anything.
func SearchKey(op string, gen uint64, kind, query string, filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(op)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(gen, 10))
	b.WriteByte('|')
	b.WriteString(kind)
	b.WriteByte('|')
	b.WriteString(strconv.Quote(query))
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(filters[k]))
	}
	return b.String()
}
