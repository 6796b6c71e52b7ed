package catalog

import (
	"fmt"

	"github.com/il2horusteam/dsget/pkg/lockfile"
	"github.com/il2horusteam/dsget/pkg/version"
)

// FromLock rebuilds a catalog from a lockfile. Artifacts keep the
// resolved URL and integrity they were locked with.
func FromLock(lock *lockfile.Lock) (*Catalog, error) {
	cat := &Catalog{Source: lock.Name}
	for name, a := range lock.Artifacts {
		v, err := version.Parse(a.Version)
		if err != nil {
			return nil, fmt.Errorf("reading locked artifact %s: %w", name, err)
		}
		digest, err := a.Digest()
		if err != nil {
			return nil, fmt.Errorf("reading locked artifact %s: %w", name, err)
		}
		cat.Releases = append(cat.Releases, Release{
			Version: v,
			Kind:    a.Kind,
			Name:    name,
			URL:     a.Resolved,
			MD5:     digest,
			Size:    a.Size,
		})
		cat.Versions = append(cat.Versions, v)
	}
	cat.sort()
	return cat, nil
}

// Pin applies the resolved URL and integrity of a lockfile to every
// release, after checking that the lock and the catalog line up.
func (c *Catalog) Pin(lock *lockfile.Lock) error {
	if err := lock.Validate(c.Names()); err != nil {
		return err
	}
	for i, r := range c.Releases {
		a := lock.Artifacts[r.Name]
		digest, err := a.Digest()
		if err != nil {
			return fmt.Errorf("pinning %s: %w", r.Name, err)
		}
		c.Releases[i].MD5 = digest
		c.Releases[i].URL = a.Resolved
		if a.Size > 0 {
			c.Releases[i].Size = a.Size
		}
	}
	return nil
}
