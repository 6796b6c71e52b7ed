package requestutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/go-logr/logr"
)

// ErrMalformedChecksum indicates that a sidecar file does not carry
// an md5 digest.
var ErrMalformedChecksum = errors.New("malformed md5 checksum")

var md5Pattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// FetchMD5 retrieves an md5 sidecar file and extracts the digest from
// it. The raw body is returned as well so the caller can replay the
// sidecar next to the downloaded artifact.
func FetchMD5(ctx context.Context, src string) (string, string, error) {
	log := logr.FromContextOrDiscard(ctx)
	log.V(1).Info("fetching checksum", "url", src)

	var buf bytes.Buffer
	if err := requests.URL(src).Handle(WithGzip(&buf)).Fetch(ctx); err != nil {
		return "", "", fmt.Errorf("fetching checksum: %w", err)
	}
	digest, err := ParseMD5(buf.String())
	if err != nil {
		return "", "", fmt.Errorf("reading checksum from %s: %w", src, err)
	}
	return digest, buf.String(), nil
}

// ParseMD5 extracts the hex digest from md5sum output such as
// "11e407e5e5f27d44e0b64e035f2cbcad *server-4.12.zip".
func ParseMD5(s string) (string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrMalformedChecksum)
	}
	if !md5Pattern.MatchString(fields[0]) {
		return "", fmt.Errorf("%w: %q", ErrMalformedChecksum, fields[0])
	}
	return strings.ToLower(fields[0]), nil
}
