package lockfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// Read loads a lockfile from the given path.
func Read(ctx context.Context, path string) (*Lock, error) {
	log := logr.FromContextOrDiscard(ctx)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("missing lockfile")
		}
		log.Error(err, "failed to open lockfile")
		return nil, err
	}
	defer f.Close()
	// read the lockfile
	var lock Lock
	if err := json.NewDecoder(f).Decode(&lock); err != nil {
		log.Error(err, "failed to read lockfile")
		return nil, err
	}
	return &lock, nil
}

// Name derives the lockfile name that sits next to a catalog source,
// e.g. "catalog.yaml" becomes "catalog-lock.json".
func Name(s string) string {
	return strings.TrimSuffix(s, filepath.Ext(s)) + "-lock.json"
}
