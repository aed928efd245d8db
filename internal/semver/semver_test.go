package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"1.2.3", Version{Major: 1, Minor: 2, Patch: 3}},
		{"0.0.0", Version{}},
		{"1.1.0-rc.1", Version{Major: 1, Minor: 1, Pre: &PreRelease{Label: "rc", Number: 1}}},
		{"2.0.0-beta.pre.0", Version{Major: 2, Pre: &PreRelease{Label: "beta.pre", Number: 0}}},
		{"1.2.3+build.5", Version{Major: 1, Minor: 2, Patch: 3, Build: "build.5"}},
		{"1.2.3-rc.4+abc", Version{Major: 1, Minor: 2, Patch: 3, Pre: &PreRelease{Label: "rc", Number: 4}, Build: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseRejectsMalformedVersions(t *testing.T) {
	for _, input := range []string{"", "1.2", "1.2.3.4", "a.b.c", "1.2.x", "-1.2.3", "1.2.3-"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidVersion)
		})
	}
}

func TestParseRejectsMalformedPreRelease(t *testing.T) {
	for _, input := range []string{"1.2.3-rc", "1.2.3-rc.x", "1.2.3-.4", "1.2.3-rc."} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidPreRelease)
		})
	}
}

func TestBumpStableRules(t *testing.T) {
	tests := []struct {
		name    string
		current string
		rule    Rule
		want    string
	}{
		{"major zeroes lower components", "1.2.3", Rule{Kind: RuleMajor}, "2.0.0"},
		{"minor zeroes patch", "1.2.3", Rule{Kind: RuleMinor}, "1.3.0"},
		{"patch increments", "1.2.3", Rule{Kind: RulePatch}, "1.2.4"},
		{"major clears pre-release", "2.0.0-rc.3", Rule{Kind: RuleMajor}, "3.0.0"},
		{"minor clears pre-release", "1.2.0-beta.1", Rule{Kind: RuleMinor}, "1.3.0"},
		{"patch clears build metadata", "1.2.3+abc", Rule{Kind: RulePatch}, "1.2.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, err := Parse(tt.current)
			require.NoError(t, err)
			got, err := Bump(current, tt.rule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Nil(t, got.Pre)
			assert.Positive(t, Compare(got, current), "bump must move the version forward")
		})
	}
}

func TestBumpPreRelease(t *testing.T) {
	tests := []struct {
		name    string
		current string
		label   string
		want    string
	}{
		{"stable opens a new series at next patch", "1.2.3", "rc", "1.2.4-rc.0"},
		{"same label increments the counter", "1.1.0-rc.1", "rc", "1.1.0-rc.2"},
		{"label switch restarts on the same triple", "1.1.0-rc.4", "beta", "1.1.0-beta.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, err := Parse(tt.current)
			require.NoError(t, err)
			got, err := Bump(current, Rule{Kind: RulePre, Label: tt.label})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBumpPreReleaseRequiresLabel(t *testing.T) {
	_, err := Bump(Version{Major: 1}, Rule{Kind: RulePre})
	assert.ErrorIs(t, err, ErrInvalidPreRelease)
}

func TestBumpRelease(t *testing.T) {
	current, err := Parse("2.0.0-rc.3")
	require.NoError(t, err)
	got, err := Bump(current, Rule{Kind: RuleRelease})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got.String())

	stable, err := Parse("2.0.0")
	require.NoError(t, err)
	_, err = Bump(stable, Rule{Kind: RuleRelease})
	assert.ErrorIs(t, err, ErrNoPreRelease)
}

func TestCompareOrdering(t *testing.T) {
	ordered := []string{
		"0.9.9",
		"1.0.0-beta.1",
		"1.0.0-rc.0",
		"1.0.0-rc.1",
		"1.0.0",
		"1.0.1",
		"1.1.0",
		"2.0.0",
	}
	for i := 1; i < len(ordered); i++ {
		lower, err := Parse(ordered[i-1])
		require.NoError(t, err)
		higher, err := Parse(ordered[i])
		require.NoError(t, err)
		assert.Negative(t, Compare(lower, higher), "%s < %s", ordered[i-1], ordered[i])
		assert.Positive(t, Compare(higher, lower), "%s > %s", ordered[i], ordered[i-1])
	}
	v, err := Parse("1.0.0")
	require.NoError(t, err)
	assert.Zero(t, Compare(v, v))
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		input string
		want  Rule
	}{
		{"major", Rule{Kind: RuleMajor}},
		{"minor", Rule{Kind: RuleMinor}},
		{"patch", Rule{Kind: RulePatch}},
		{"release", Rule{Kind: RuleRelease}},
		{"pre:rc", Rule{Kind: RulePre, Label: "rc"}},
	}
	for _, tt := range tests {
		got, err := ParseRule(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseRule("bogus")
	assert.Error(t, err)
	_, err = ParseRule("pre:")
	assert.Error(t, err)
}
