package verspec

import (
	"github.com/il2horusteam/dsget/pkg/version"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestConstraint_Matches(t *testing.T) {
	var cases = []struct {
		op  Operator
		ver string
		in  string
		out bool
	}{
		{OpEqual, "4.12", "4.12", true},
		{OpEqual, "4.12", "4.12.0", true},
		{OpEqual, "4.12", "4.12.1", false},
		{OpNotEqual, "4.12", "4.12.1", true},
		{OpNotEqual, "4.12", "4.12.0", false},
		{OpGreaterEqual, "4.12", "4.12", true},
		{OpGreaterEqual, "4.12", "4.11.1", false},
		{OpLessEqual, "4.12", "4.12", true},
		{OpLessEqual, "4.12", "4.12.1", false},
		{OpGreater, "4.12", "4.12.1", true},
		{OpGreater, "4.12", "4.12", false},
		{OpLess, "4.12", "4.11.1", true},
		{OpLess, "4.12", "4.12", false},
	}

	for _, tt := range cases {
		c := Constraint{Op: tt.op, Version: version.MustParse(tt.ver)}
		t.Run(c.String()+" vs "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, c.Matches(version.MustParse(tt.in)))
		})
	}
}

func TestClause_Matches(t *testing.T) {
	clause := Clause{
		{Op: OpGreaterEqual, Version: version.MustParse("4.12")},
		{Op: OpLess, Version: version.MustParse("4.13")},
	}

	assert.True(t, clause.Matches(version.MustParse("4.12")))
	assert.True(t, clause.Matches(version.MustParse("4.12.2")))
	assert.False(t, clause.Matches(version.MustParse("4.13")))
	assert.False(t, clause.Matches(version.MustParse("4.11.1")))

	// the empty clause accepts anything
	assert.True(t, Clause{}.Matches(version.MustParse("0.1")))
}

func TestSet_Matches(t *testing.T) {
	set := Set{
		{{Op: OpEqual, Version: version.MustParse("4.11.1")}},
		{{Op: OpEqual, Version: version.MustParse("4.10.1")}},
	}

	assert.True(t, set.Matches(version.MustParse("4.11.1")))
	assert.True(t, set.Matches(version.MustParse("4.10.1")))
	assert.False(t, set.Matches(version.MustParse("4.12")))

	// the empty set accepts anything
	assert.True(t, Set{}.Matches(version.MustParse("4.12")))
	assert.True(t, Set(nil).Matches(version.MustParse("4.12")))
}
