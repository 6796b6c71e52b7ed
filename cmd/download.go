package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-logr/logr"
	"github.com/google/go-github/v33/github"
	"github.com/il2horusteam/dsget/cmd/cache"
	"github.com/il2horusteam/dsget/internal/plan"
	"github.com/il2horusteam/dsget/pkg/catalog"
	"github.com/il2horusteam/dsget/pkg/downloader"
	"github.com/il2horusteam/dsget/pkg/envutil"
	"github.com/il2horusteam/dsget/pkg/fileutil"
	"github.com/il2horusteam/dsget/pkg/lockfile"
	"github.com/il2horusteam/dsget/pkg/requestutil"
	"github.com/il2horusteam/dsget/pkg/verspec"
	"github.com/il2horusteam/dsget/pkg/version"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
	"strings"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download dedicated server patches",
	RunE:  download,
}

const (
	flagVersion   = "version"
	flagWithZip   = "with-zip"
	flagNoZip     = "no-zip"
	flagWithExe   = "with-exe"
	flagNoExe     = "no-exe"
	flagOutputDir = "output-dir"
	flagRepo      = "repo"
	flagCatalog   = "catalog"
	flagLockfile  = "lockfile"
	flagCacheDir  = "cache-dir"
)

func init() {
	downloadCmd.Flags().StringArrayP(flagVersion, "v", nil, "version range expression (e.g. '4.14.1', '>=4.12,<4.13', '==4.12.*'). Repeatable. All versions are downloaded by default")
	downloadCmd.Flags().Bool(flagWithZip, true, "download repacked ZIP versions of patches (enabled by default)")
	downloadCmd.Flags().Bool(flagNoZip, false, "do not download repacked ZIP versions of patches")
	downloadCmd.Flags().Bool(flagWithExe, true, "download original EXE versions of patches (enabled by default)")
	downloadCmd.Flags().Bool(flagNoExe, false, "do not download original EXE versions of patches")
	downloadCmd.Flags().StringP(flagOutputDir, "o", "./patches", "output directory for downloaded files")
	downloadCmd.Flags().String(flagRepo, catalog.DefaultOwner+"/"+catalog.DefaultRepo, "github repository that publishes the patches")
	downloadCmd.Flags().String(flagCatalog, "", "path or url of a catalog file to use instead of the github api")
	downloadCmd.Flags().String(flagLockfile, "", "path to a lockfile that pins artifact checksums")
	downloadCmd.Flags().String(flagCacheDir, "", "cache directory (defaults to user cache dir)")

	_ = downloadCmd.MarkFlagFilename(flagCatalog, ".yaml", ".yml", ".json")
	_ = downloadCmd.MarkFlagFilename(flagLockfile, ".json")
	_ = downloadCmd.MarkFlagDirname(flagOutputDir)
	_ = downloadCmd.MarkFlagDirname(flagCacheDir)
}

func download(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	specs, _ := cmd.Flags().GetStringArray(flagVersion)
	outputDir, _ := cmd.Flags().GetString(flagOutputDir)
	cacheDir, _ := cmd.Flags().GetString(flagCacheDir)

	// parse the version query up front so that a typo fails
	// before any network traffic
	set, err := verspec.ParseSet(specs)
	if err != nil {
		return err
	}

	zip, exe, err := artifactKinds(cmd)
	if err != nil {
		return err
	}

	outputDir, err = filepath.Abs(envutil.ExpandEnv(outputDir))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("preparing output directory: %w", err)
	}
	log.V(3).Info("prepared output directory", "path", outputDir)

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	log.Info("available versions", "versions", versionList(cat.Versions))

	selected := verspec.Select(cat.Versions, func(v version.Version) version.Version { return v }, set)
	if len(selected) == 0 {
		log.Info("no versions match the query")
		return nil
	}
	log.Info("selected versions", "versions", versionList(selected))

	items := plan.Build(cmd.Context(), cat, selected, plan.Options{
		OutputDir: outputDir,
		Zip:       zip,
		Exe:       exe,
	})

	d, err := downloader.NewDownloader(cache.Dir(cacheDir))
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := fetchItem(cmd.Context(), d, item); err != nil {
			return err
		}
	}
	log.Info("finished", "artifacts", len(items))
	return nil
}

// fetchItem downloads one artifact into the cache, copies it to its
// final path and writes the checksum sidecar next to it.
func fetchItem(ctx context.Context, d *downloader.Downloader, item plan.Item) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("name", item.Release.Name)

	digest := item.Release.MD5
	var sidecar string
	if digest == "" && item.Release.ChecksumURL != "" {
		var err error
		digest, sidecar, err = requestutil.FetchMD5(ctx, item.Release.ChecksumURL)
		if err != nil {
			return err
		}
	}
	if digest == "" {
		log.Info("warning: artifact has no published checksum and cannot be verified")
	}

	path, err := d.Download(ctx, item.Release.URL, digest)
	if err != nil {
		return err
	}
	if err := fileutil.CopyFile(path, item.Path); err != nil {
		return fmt.Errorf("copying artifact: %w", err)
	}
	log.V(1).Info("wrote artifact", "path", item.Path)

	if digest == "" {
		return nil
	}
	if sidecar == "" {
		// same shape as the published sidecars (md5sum binary mode)
		sidecar = fmt.Sprintf("%s *%s\n", digest, item.Release.Name)
	}
	if err := os.WriteFile(item.MD5Path, []byte(sidecar), 0644); err != nil {
		return fmt.Errorf("writing checksum sidecar: %w", err)
	}
	return nil
}

// loadCatalog builds the artifact catalog from whichever source the
// flags point at. A lockfile pins the checksums of a catalog when
// both are given, or stands in as the only source of truth.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	log := logr.FromContextOrDiscard(cmd.Context())

	catalogPath, _ := cmd.Flags().GetString(flagCatalog)
	lockPath, _ := cmd.Flags().GetString(flagLockfile)
	repo, _ := cmd.Flags().GetString(flagRepo)

	var lock *lockfile.Lock
	if lockPath != "" {
		var err error
		lock, err = lockfile.Read(cmd.Context(), envutil.ExpandEnv(lockPath))
		if err != nil {
			return nil, err
		}
	}

	if catalogPath != "" {
		cat, err := catalog.FromPath(cmd.Context(), envutil.ExpandEnv(catalogPath))
		if err != nil {
			return nil, err
		}
		if lock != nil {
			if err := cat.Pin(lock); err != nil {
				return nil, err
			}
		}
		return cat, nil
	}
	if lock != nil {
		return catalog.FromLock(lock)
	}

	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return nil, fmt.Errorf("malformed repository (expecting owner/name): %s", repo)
	}
	log.V(1).Info("listing releases", "owner", owner, "repo", name)
	return catalog.FromGitHub(cmd.Context(), github.NewClient(nil), owner, name)
}

func artifactKinds(cmd *cobra.Command) (bool, bool, error) {
	withZip, _ := cmd.Flags().GetBool(flagWithZip)
	noZip, _ := cmd.Flags().GetBool(flagNoZip)
	withExe, _ := cmd.Flags().GetBool(flagWithExe)
	noExe, _ := cmd.Flags().GetBool(flagNoExe)

	zip := withZip && !noZip
	exe := withExe && !noExe
	if !zip && !exe {
		return false, false, errors.New("both EXE and ZIP are disabled: at least one of them must be enabled")
	}
	return zip, exe, nil
}

func versionList(versions []version.Version) string {
	names := make([]string, 0, len(versions))
	for _, v := range versions {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}
