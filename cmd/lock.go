package cmd

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/il2horusteam/dsget/cmd/cache"
	"github.com/il2horusteam/dsget/pkg/catalog"
	"github.com/il2horusteam/dsget/pkg/downloader"
	"github.com/il2horusteam/dsget/pkg/envutil"
	"github.com/il2horusteam/dsget/pkg/lockfile"
	"github.com/il2horusteam/dsget/pkg/requestutil"
	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "generate a lockfile",
	RunE:  lock,
}

func init() {
	lockCmd.Flags().String(flagRepo, catalog.DefaultOwner+"/"+catalog.DefaultRepo, "github repository that publishes the patches")
	lockCmd.Flags().String(flagCatalog, "", "path or url of a catalog file to use instead of the github api")
	lockCmd.Flags().String(flagCacheDir, "", "cache directory (defaults to user cache dir)")

	_ = lockCmd.MarkFlagFilename(flagCatalog, ".yaml", ".yml", ".json")
	_ = lockCmd.MarkFlagDirname(flagCacheDir)
}

func lock(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	cacheDir, _ := cmd.Flags().GetString(flagCacheDir)
	d, err := downloader.NewDownloader(cache.Dir(cacheDir))
	if err != nil {
		return err
	}

	lockFile := lockfile.Lock{
		Name:            cat.Source,
		LockfileVersion: 1,
		Artifacts:       map[string]lockfile.Artifact{},
	}

	// get artifact integrity
	log.Info("generating artifact checksums")
	for _, rel := range cat.Releases {
		digest, err := resolveDigest(cmd.Context(), d, rel)
		if err != nil {
			return err
		}
		lockFile.Artifacts[rel.Name] = lockfile.Artifact{
			Name:      rel.Name,
			Kind:      rel.Kind,
			Version:   rel.Version.String(),
			Resolved:  rel.URL,
			Integrity: lockfile.Integrity(digest),
			Size:      rel.Size,
		}
	}
	log.V(1).Info("locked artifacts", "names", strings.Join(lockFile.SortedNames(), ", "))

	target := lockTarget(cmd)
	log.Info("exporting lockfile", "path", target)
	f, err := os.Create(target)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	return enc.Encode(lockFile)
}

// resolveDigest finds the md5 digest of a release, downloading the
// artifact as a last resort when the source does not publish one.
func resolveDigest(ctx context.Context, d *downloader.Downloader, rel catalog.Release) (string, error) {
	log := logr.FromContextOrDiscard(ctx)
	if rel.MD5 != "" {
		return rel.MD5, nil
	}
	if rel.ChecksumURL != "" {
		digest, _, err := requestutil.FetchMD5(ctx, rel.ChecksumURL)
		return digest, err
	}

	log.V(1).Info("downloading artifact to generate its checksum", "name", rel.Name)
	path, err := d.Download(ctx, rel.URL, "")
	if err != nil {
		return "", err
	}
	return lockfile.MD5(path)
}

// the lockfile sits next to a local catalog file. Remote catalogs and
// the github api drop it into the working directory.
func lockTarget(cmd *cobra.Command) string {
	catalogPath, _ := cmd.Flags().GetString(flagCatalog)
	if catalogPath == "" {
		repo, _ := cmd.Flags().GetString(flagRepo)
		_, name, _ := strings.Cut(repo, "/")
		return lockfile.Name(name)
	}
	catalogPath = envutil.ExpandEnv(catalogPath)
	if strings.Contains(catalogPath, "://") {
		if uri, err := url.Parse(catalogPath); err == nil {
			return lockfile.Name(filepath.Base(uri.Path))
		}
	}
	return lockfile.Name(catalogPath)
}
