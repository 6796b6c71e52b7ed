package verspec

import (
	"github.com/il2horusteam/dsget/pkg/version"
)

// Operator is one of the six comparison operators a constraint may
// carry.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
)

// operators in match order. Two character operators go first so that
// ">=4.12" is never read as ">" followed by "=4.12".
var operators = []Operator{OpGreaterEqual, OpLessEqual, OpEqual, OpNotEqual, OpGreater, OpLess}

// Constraint is a single operator and version pair, e.g. ">=4.12".
type Constraint struct {
	Op      Operator
	Version version.Version
}

// Matches reports whether v satisfies the constraint.
func (c Constraint) Matches(v version.Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	}
	return false
}

func (c Constraint) String() string {
	return string(c.Op) + c.Version.String()
}

// Clause is the AND combination of the constraints parsed from one
// spec token. The empty clause matches any version.
type Clause []Constraint

// Matches reports whether v satisfies every constraint in the clause.
func (c Clause) Matches(v version.Version) bool {
	for _, con := range c {
		if !con.Matches(v) {
			return false
		}
	}
	return true
}

// Set is the OR combination of clauses across spec tokens. The empty
// set matches any version.
type Set []Clause

// Matches reports whether v satisfies at least one clause.
func (s Set) Matches(v version.Version) bool {
	if len(s) == 0 {
		return true
	}
	for _, c := range s {
		if c.Matches(v) {
			return true
		}
	}
	return false
}
