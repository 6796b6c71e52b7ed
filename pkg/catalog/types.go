package catalog

import (
	"fmt"
	"slices"

	v1 "github.com/il2horusteam/dsget/pkg/api/v1"
	"github.com/il2horusteam/dsget/pkg/version"
)

// DefaultOwner and DefaultRepo locate the published patches on GitHub.
const (
	DefaultOwner = "IL2HorusTeam"
	DefaultRepo  = "il2fb-ds-patches"
)

// Release is one downloadable artifact of a published patch version.
type Release struct {
	Version version.Version
	Kind    v1.ArtifactKind
	// Name is the artifact file name, e.g. "server-4.12.zip"
	Name string
	URL  string
	// MD5 is the hex digest when the source states it up front
	MD5 string
	// ChecksumURL locates the md5 sidecar published next to the
	// artifact
	ChecksumURL string
	Size        int64
}

// Catalog is every artifact a source knows about. Releases are held
// in canonical order: ascending by version, zip before exe within one
// version. Versions also lists tags that carry no usable artifact so
// that a selection can warn about them.
type Catalog struct {
	Source   string
	Releases []Release
	Versions []version.Version
}

// Names returns the artifact file name of every release.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Releases))
	for _, r := range c.Releases {
		names = append(names, r.Name)
	}
	return names
}

func (c *Catalog) sort() {
	slices.SortStableFunc(c.Releases, func(a, b Release) int {
		if cmp := a.Version.Compare(b.Version); cmp != 0 {
			return cmp
		}
		return kindPriority(a.Kind) - kindPriority(b.Kind)
	})
	slices.SortFunc(c.Versions, version.Version.Compare)
	c.Versions = slices.CompactFunc(c.Versions, version.Version.Equal)
}

// AssetName returns the artifact file name for a version and kind.
func AssetName(v version.Version, kind v1.ArtifactKind) string {
	return fmt.Sprintf("server-%s.%s", v, kind)
}

// the repack is preferred over the installer for the same version
func kindPriority(k v1.ArtifactKind) int {
	switch k {
	case v1.ArtifactZip:
		return 0
	case v1.ArtifactExe:
		return 1
	}
	return 2
}
