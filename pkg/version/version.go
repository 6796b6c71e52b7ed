package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedVersion indicates that a version string is not a dotted
// tuple of non-negative integers.
var ErrMalformedVersion = errors.New("malformed version")

var pattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Version is a dotted release version (e.g. "4.12.1") held as an
// ordered tuple of integers. Missing trailing components compare as
// zero, so "4.12" and "4.12.0" are equal.
type Version []int

// Parse converts text such as "4.12.1" into a Version. It rejects
// empty strings, leading/trailing/double dots and non-integer
// segments with ErrMalformedVersion.
func Parse(s string) (Version, error) {
	if !pattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
		}
		v[i] = n
	}
	return v, nil
}

// MustParse is Parse for static input. It panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or 1 when v sorts before, equal to or after o.
// The shorter tuple is zero padded before pairwise comparison.
func (v Version) Compare(o Version) int {
	n := max(len(v), len(o))
	for i := 0; i < n; i++ {
		a, b := v.at(i), o.at(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Equal returns true when both versions compare as identical.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// Bump returns a copy of v with the final component incremented. It
// is the exclusive upper bound of the range a wildcard such as
// "4.12.*" covers.
func (v Version) Bump() Version {
	out := make(Version, len(v))
	copy(out, v)
	out[len(out)-1]++
	return out
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func (v Version) at(i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}
