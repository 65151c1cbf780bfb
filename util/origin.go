package util

import (
	"strings"

	"github.com/samber/lo"
)

// OriginAllowed reports whether a browser origin may connect. An empty
// origin (non-browser client) is always allowed, and "*" allows everything.
func OriginAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}

	return lo.ContainsBy(allowed, func(a string) bool {
		a = strings.TrimRight(strings.TrimSpace(a), "/")
		return a == "*" || strings.EqualFold(a, origin)
	})
}
