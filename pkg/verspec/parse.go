package verspec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/il2horusteam/dsget/pkg/version"
)

// ErrInvalidConstraint indicates that a constraint is not one of the
// recognised shapes (operator-prefixed, bare version or wildcard).
var ErrInvalidConstraint = errors.New("invalid constraint syntax")

// ParseClause parses one spec token such as ">=4.12,<4.13", "4.12.*"
// or "==4.11.1" into the AND set of its comma separated constraints.
// The bare token "*" yields the empty clause, which selects
// everything.
func ParseClause(token string) (Clause, error) {
	if strings.TrimSpace(token) == "*" {
		return Clause{}, nil
	}
	clause := Clause{}
	for _, part := range strings.Split(token, ",") {
		cs, err := parseConstraint(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parsing spec %q: %w", token, err)
		}
		clause = append(clause, cs...)
	}
	return clause, nil
}

// ParseSet parses every spec token, failing on the first bad one. The
// resulting set ORs its clauses; the empty set matches everything.
func ParseSet(tokens []string) (Set, error) {
	set := make(Set, 0, len(tokens))
	for _, t := range tokens {
		clause, err := ParseClause(t)
		if err != nil {
			return nil, err
		}
		set = append(set, clause)
	}
	return set, nil
}

func parseConstraint(s string) ([]Constraint, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty constraint", ErrInvalidConstraint)
	}
	op, rest := splitOperator(s)
	if prefix, ok := strings.CutSuffix(rest, ".*"); ok {
		// wildcards expand to a half-open range and only make
		// sense for equality
		if op != OpEqual {
			return nil, fmt.Errorf("%w: %q (wildcard after %q)", ErrInvalidConstraint, s, op)
		}
		lo, err := version.Parse(prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidConstraint, s)
		}
		return []Constraint{
			{Op: OpGreaterEqual, Version: lo},
			{Op: OpLess, Version: lo.Bump()},
		}, nil
	}
	v, err := version.Parse(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidConstraint, s)
	}
	return []Constraint{{Op: op, Version: v}}, nil
}

// splitOperator peels a leading comparison operator off s. A bare
// version is shorthand for equality.
func splitOperator(s string) (Operator, string) {
	for _, op := range operators {
		if rest, ok := strings.CutPrefix(s, string(op)); ok {
			return op, strings.TrimSpace(rest)
		}
	}
	return OpEqual, s
}
