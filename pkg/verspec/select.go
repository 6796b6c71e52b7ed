package verspec

import (
	"github.com/il2horusteam/dsget/pkg/version"
)

// Select returns the items whose version satisfies the set, keeping
// input order. The input slice is never modified. An empty set
// selects everything; an empty result is a valid outcome, not an
// error.
func Select[T any](items []T, ver func(T) version.Version, set Set) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if set.Matches(ver(item)) {
			out = append(out, item)
		}
	}
	return out
}
