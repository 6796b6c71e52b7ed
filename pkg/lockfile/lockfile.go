package lockfile

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Validate checks that the catalog lines up with what we expect from
// the lockfile and vice versa
func (l *Lock) Validate(names []string) error {
	// check that the catalog artifacts are all in the lockfile
	for _, n := range names {
		_, ok := l.Artifacts[n]
		if !ok {
			return fmt.Errorf("artifact not found in lock: %s", n)
		}
	}

	// now we do the reverse

	for k := range l.Artifacts {
		if k == "" {
			continue
		}
		var found bool
		for _, n := range names {
			if n == k {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("artifact found in lock, but not catalog: %s", k)
		}
	}

	return nil
}

// SortedNames returns artifact names
// sorted alphabetically.
func (l *Lock) SortedNames() []string {
	names := maps.Keys(l.Artifacts)
	sort.Strings(names)
	return names
}
