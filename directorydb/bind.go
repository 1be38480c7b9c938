package directorydb

import (
	"strconv"
	"strings"
)

// rebind rewrites ? placeholders into the $1, $2 form Postgres expects.
// Queries in this package never contain a literal question mark.
func rebind(driver Driver, query string) string {
	if driver != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
