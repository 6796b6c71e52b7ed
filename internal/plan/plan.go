package plan

import (
	"context"
	"path/filepath"

	"github.com/go-logr/logr"
	v1 "github.com/il2horusteam/dsget/pkg/api/v1"
	"github.com/il2horusteam/dsget/pkg/catalog"
	"github.com/il2horusteam/dsget/pkg/version"
)

// Options controls which artifact kinds a selection expands to and
// where the files land on disk.
type Options struct {
	OutputDir string
	Zip       bool
	Exe       bool
}

// Item is a single artifact scheduled for download.
type Item struct {
	Release catalog.Release
	// Path is the final location of the artifact
	Path string
	// MD5Path is the final location of the checksum sidecar
	MD5Path string
}

// Build expands the selected versions into concrete download items.
// A version that has no artifact of an enabled kind is logged and
// skipped rather than failing the run.
func Build(ctx context.Context, cat *catalog.Catalog, versions []version.Version, opts Options) []Item {
	log := logr.FromContextOrDiscard(ctx)

	kinds := make([]v1.ArtifactKind, 0, 2)
	if opts.Zip {
		kinds = append(kinds, v1.ArtifactZip)
	}
	if opts.Exe {
		kinds = append(kinds, v1.ArtifactExe)
	}

	byName := make(map[string]catalog.Release, len(cat.Releases))
	for _, rel := range cat.Releases {
		byName[rel.Name] = rel
	}

	items := make([]Item, 0, len(versions)*len(kinds))
	for _, v := range versions {
		for _, kind := range kinds {
			name := catalog.AssetName(v, kind)
			rel, ok := byName[name]
			if !ok {
				log.Info("warning: no info about artifact", "name", name)
				continue
			}
			items = append(items, Item{
				Release: rel,
				Path:    filepath.Join(opts.OutputDir, name),
				MD5Path: filepath.Join(opts.OutputDir, name+".md5"),
			})
		}
	}
	return items
}
