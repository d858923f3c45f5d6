package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitConfigPlatform(t *testing.T) {
	tests := []struct {
		full     string
		cfg      string
		platform string
	}{
		{"Debug|Any CPU", "Debug", "Any CPU"},
		{"Release|x64", "Release", "x64"},
		{"Debug", "Debug", ""},
		{"CI|.NET|Weird", "CI", ".NET|Weird"},
	}
	for _, tt := range tests {
		cfg, plat := splitConfigPlatform(tt.full)
		assert.Equal(t, tt.cfg, cfg)
		assert.Equal(t, tt.platform, plat)
	}
}

func TestParseSolutionConfigurations(t *testing.T) {
	sec := RawSection{
		Name:  sectionSolutionConfigurations,
		Order: PreSolution,
		Pairs: []KeyValue{
			{Key: "Debug|Any CPU", Value: "Debug|Any CPU"},
			{Key: "DESCRIPTION", Value: "editor metadata"},
			{Key: "Release|Any CPU", Value: "Release|Any CPU"},
		},
	}
	configs := parseSolutionConfigurations(sec)

	require.Len(t, configs, 2)
	assert.Equal(t, "Debug|Any CPU", configs[0].FullName)
	assert.Equal(t, "Release", configs[1].Configuration)
	assert.Equal(t, "Any CPU", configs[1].Platform)
}

func TestParseProjectConfigurations(t *testing.T) {
	opts := DefaultParserOptions()
	sec := RawSection{
		Name:  sectionProjectConfigurations,
		Order: PostSolution,
		Pairs: []KeyValue{
			{Key: "{11111111-1111-1111-1111-111111111111}.Debug|Any CPU.ActiveCfg", Value: "Debug|Any CPU", Line: 20},
			{Key: "{11111111-1111-1111-1111-111111111111}.Debug|Any CPU.Build.0", Value: "Debug|Any CPU", Line: 21},
			{Key: "{11111111-1111-1111-1111-111111111111}.Release|Any CPU.ActiveCfg", Value: "Release|x64", Line: 22},
			{Key: "{11111111-1111-1111-1111-111111111111}.Release|Any CPU.Deploy.0", Value: "Release|x64", Line: 23},
		},
	}
	var warns []Warning
	table := parseProjectConfigurations(sec, opts, &warns)

	require.Contains(t, table, "{11111111-1111-1111-1111-111111111111}")
	byConfig := table["{11111111-1111-1111-1111-111111111111}"]

	debug := byConfig["Debug|Any CPU"]
	assert.Equal(t, "Debug", debug.Configuration)
	assert.Equal(t, "Any CPU", debug.Platform)
	assert.True(t, debug.Build)

	// ActiveCfg may retarget a different platform than the solution config.
	release := byConfig["Release|Any CPU"]
	assert.Equal(t, "Release", release.Configuration)
	assert.Equal(t, "x64", release.Platform)
	assert.False(t, release.Build)

	assert.Empty(t, warns)
}

func TestParseProjectConfigurations_BuildBeforeActiveCfg(t *testing.T) {
	// Declaration order of the two suffix lines is not significant.
	opts := DefaultParserOptions()
	sec := RawSection{
		Pairs: []KeyValue{
			{Key: "{11111111-1111-1111-1111-111111111111}.Debug|Any CPU.Build.0", Value: "Debug|Any CPU"},
			{Key: "{11111111-1111-1111-1111-111111111111}.Debug|Any CPU.ActiveCfg", Value: "Debug|Any CPU"},
		},
	}
	var warns []Warning
	table := parseProjectConfigurations(sec, opts, &warns)

	pc := table["{11111111-1111-1111-1111-111111111111}"]["Debug|Any CPU"]
	assert.Equal(t, "Debug", pc.Configuration)
	assert.True(t, pc.Build)
}

func TestParseProjectConfigurations_MalformedKeysWarn(t *testing.T) {
	opts := DefaultParserOptions()
	sec := RawSection{
		Pairs: []KeyValue{
			{Key: "garbage.Debug|Any CPU.ActiveCfg", Value: "Debug|Any CPU", Line: 31},
			{Key: "NoDotAtAll.ActiveCfg", Value: "Debug|Any CPU", Line: 32},
		},
	}
	var warns []Warning
	table := parseProjectConfigurations(sec, opts, &warns)

	assert.Empty(t, table)
	require.Len(t, warns, 2)
	assert.Equal(t, 31, warns[0].Line)
	assert.Equal(t, 32, warns[1].Line)
}
